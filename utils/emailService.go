package utils

import (
	"fmt"
	"log"

	"lms/config"
	"lms/models/catalog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func sendEmail(toEmail, toName, subject, htmlBody string) {
	cfg := config.AppConfig
	if cfg.SendgridApiKey == "" {
		log.Printf("Email skipped (no SENDGRID_API_KEY): %s -> %s", subject, toEmail)
		return
	}

	from := mail.NewEmail("LMS", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("Email to %s rejected: %d %s", toEmail, resp.StatusCode, resp.Body)
	}
}

// SendWelcomeEmail greets a newly registered student.
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
	<p>Your account has been created. Browse the available batches and request
	enrollment to get started.</p>`, name)
	sendEmail(email, name, "Welcome to LMS", body)
}

// SendEnrollmentDecisionEmail notifies a student that an admin decided their
// enrollment request.
func SendEnrollmentDecisionEmail(email, name, batchName string, request *catalog.EnrollmentRequest) {
	var subject, body string
	if request.Status == catalog.RequestApproved {
		subject = fmt.Sprintf("Enrollment approved: %s", batchName)
		body = fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your enrollment request for <b>%s</b> has been approved. The batch
		content is now available in your dashboard.</p>`, name, batchName)
	} else {
		subject = fmt.Sprintf("Enrollment denied: %s", batchName)
		body = fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your enrollment request for <b>%s</b> was denied.</p>`, name, batchName)
		if request.DenialReason != "" {
			body += fmt.Sprintf("<p>Reason: %s</p>", request.DenialReason)
		}
		body += "<p>You may submit a new request at any time.</p>"
	}
	sendEmail(email, name, subject, body)
}
