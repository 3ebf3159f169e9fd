// Package apperr defines the error taxonomy shared by the catalog and
// enrollment services. Services return these types instead of writing HTTP
// responses; controllers decide presentation.
package apperr

import "fmt"

// ValidationError reports bad input, raised before any database call.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NotFoundError reports a missing or soft-deleted entity. An entity vanishing
// between list and operate is a normal condition, not a crash.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// DuplicateRequestError reports an enrollment request for a (user, batch)
// pair that already has a pending or approved one.
type DuplicateRequestError struct {
	UserID  uint
	BatchID uint
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("user %d already has a live enrollment request for batch %d", e.UserID, e.BatchID)
}

// AlreadyDecidedError reports an approve/deny on a request that is no longer
// pending. Decisions are terminal.
type AlreadyDecidedError struct {
	RequestID uint
	Status    string
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("enrollment request %d already decided (%s)", e.RequestID, e.Status)
}

// CascadeError reports a failed cascading delete. The whole transaction is
// rolled back, so no partial state is reachable; the caller retries the
// operation as a whole.
type CascadeError struct {
	Entity string
	ID     uint
	Err    error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete of %s %d failed: %v", e.Entity, e.ID, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }
