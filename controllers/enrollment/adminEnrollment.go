package enrollmentController

import (
	"log"

	"lms/middleware"
	"lms/models/catalog"
	"lms/utils"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// ListPending returns the admin approval queue, oldest first.
func (h *Controller) ListPending(c *fiber.Ctx) error {
	requests, err := h.svc.ListPending()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending requests fetched successfully!", requests)
}

// Approve decides a pending request in the student's favor.
func (h *Controller) Approve(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	request, err := h.svc.Approve(uint(requestID), adminID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	h.notifyDecision(request)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request approved!", request)
}

// Deny decides a pending request against the student, with an optional reason.
func (h *Controller) Deny(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	requestID, err := c.ParamsInt("id")
	if err != nil || requestID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request id!", nil)
	}

	reason := ""
	if reqData, ok := c.Locals("validatedDeny").(*enrollmentValidator.DenyRequest); ok {
		reason = reqData.Reason
	}

	request, err := h.svc.Deny(uint(requestID), adminID, reason)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	h.notifyDecision(request)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment request denied.", request)
}

func (h *Controller) notifyDecision(request *catalog.EnrollmentRequest) {
	user, err := h.svc.Requester(request)
	if err != nil {
		log.Printf("Error resolving requester for notification: %v", err)
		return
	}
	batchName := h.svc.BatchName(request)
	go utils.SendEnrollmentDecisionEmail(user.Email, user.Name, batchName, request)
}
