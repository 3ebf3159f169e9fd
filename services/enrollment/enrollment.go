// Package enrollment implements the per-(user, batch) request workflow:
// none -> PENDING -> APPROVED | DENIED, with both decisions terminal.
package enrollment

import (
	"errors"
	"strings"
	"time"

	"lms/apperr"
	"lms/models"
	"lms/models/catalog"

	"gorm.io/gorm"
)

// Service owns all enrollment request state transitions.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Request files a PENDING enrollment request. The unique index on
// (user_id, batch_id, active) rejects a second live request for the same
// pair, so two concurrent calls cannot both succeed.
func (s *Service) Request(userID, batchID uint) (*catalog.EnrollmentRequest, error) {
	var batch catalog.Batch
	if err := s.db.Where("id = ? AND is_deleted = ?", batchID, false).First(&batch).Error; err != nil {
		return nil, &apperr.NotFoundError{Entity: "batch", ID: batchID}
	}

	active := true
	request := catalog.EnrollmentRequest{
		UserID:      userID,
		BatchID:     batchID,
		Status:      catalog.RequestPending,
		Active:      &active,
		RequestedAt: time.Now(),
	}
	if err := s.db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &apperr.DuplicateRequestError{UserID: userID, BatchID: batchID}
		}
		return nil, err
	}
	return &request, nil
}

// Approve moves a pending request to APPROVED.
func (s *Service) Approve(requestID, adminID uint) (*catalog.EnrollmentRequest, error) {
	return s.decide(requestID, adminID, catalog.RequestApproved, "")
}

// Deny moves a pending request to DENIED with an optional reason. The row
// keeps its history but drops out of the live-uniqueness index, so the
// student may request again later.
func (s *Service) Deny(requestID, adminID uint, reason string) (*catalog.EnrollmentRequest, error) {
	return s.decide(requestID, adminID, catalog.RequestDenied, strings.TrimSpace(reason))
}

func (s *Service) decide(requestID, adminID uint, status, reason string) (*catalog.EnrollmentRequest, error) {
	var request catalog.EnrollmentRequest

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", requestID, false).First(&request).Error; err != nil {
			return &apperr.NotFoundError{Entity: "enrollment request", ID: requestID}
		}
		if request.Status != catalog.RequestPending {
			return &apperr.AlreadyDecidedError{RequestID: requestID, Status: request.Status}
		}

		now := time.Now()
		request.Status = status
		request.DecidedAt = &now
		request.DecidedBy = &adminID
		if status == catalog.RequestDenied {
			request.Active = nil
			request.DenialReason = reason
		}

		updates := map[string]interface{}{
			"status":        request.Status,
			"decided_at":    request.DecidedAt,
			"decided_by":    request.DecidedBy,
			"active":        request.Active,
			"denial_reason": request.DenialReason,
		}
		return tx.Model(&catalog.EnrollmentRequest{}).Where("id = ?", requestID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListPending returns undecided requests, oldest first, for the admin queue.
func (s *Service) ListPending() ([]catalog.EnrollmentRequest, error) {
	var requests []catalog.EnrollmentRequest
	err := s.db.Where("status = ? AND is_deleted = ?", catalog.RequestPending, false).
		Order("requested_at asc").Find(&requests).Error
	return requests, err
}

// ListByUser returns all of a student's requests, most recent first.
func (s *Service) ListByUser(userID uint) ([]catalog.EnrollmentRequest, error) {
	var requests []catalog.EnrollmentRequest
	err := s.db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("requested_at desc").Find(&requests).Error
	return requests, err
}

// Requester resolves the user behind a request, for notification emails.
func (s *Service) Requester(request *catalog.EnrollmentRequest) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ? AND is_deleted = ?", request.UserID, false).First(&user).Error; err != nil {
		return nil, &apperr.NotFoundError{Entity: "user", ID: request.UserID}
	}
	return &user, nil
}

// BatchName resolves the batch name for a request; deleted batches fall back
// to an empty string rather than failing a notification.
func (s *Service) BatchName(request *catalog.EnrollmentRequest) string {
	var batch catalog.Batch
	if err := s.db.Where("id = ?", request.BatchID).First(&batch).Error; err != nil {
		return ""
	}
	return batch.Name
}
