package catalog

import (
	"time"

	"gorm.io/gorm"
)

const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestDenied   = "DENIED"
)

// EnrollmentRequest tracks a student's ask to join a Batch through the
// PENDING -> APPROVED | DENIED state machine.
//
// Active is true while the request is PENDING or APPROVED and NULL once
// DENIED. The composite unique index therefore allows any number of denied
// requests per (user, batch) but at most one live one, and makes concurrent
// double-requests fail at the database rather than racing a lookup.
type EnrollmentRequest struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null;uniqueIndex:idx_live_request"`
	BatchID      uint       `json:"batch_id" gorm:"index;not null;uniqueIndex:idx_live_request"`
	Status       string     `json:"status" gorm:"default:'PENDING'"`
	Active       *bool      `json:"-" gorm:"uniqueIndex:idx_live_request"`
	RequestedAt  time.Time  `json:"requested_at"`
	DecidedAt    *time.Time `json:"decided_at"`
	DecidedBy    *uint      `json:"decided_by"`
	DenialReason string     `json:"denial_reason"`
	IsDeleted    bool       `gorm:"default:false"`
}
