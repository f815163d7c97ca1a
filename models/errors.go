package models

import "fmt"

// The four error kinds every scheduling action can surface. Handlers map them
// to HTTP status codes with errors.As; nothing else is treated as recoverable.

// ValidationError reports malformed input. Recoverable by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ForbiddenError reports an authorization failure. Terminal for that action,
// never retried automatically.
type ForbiddenError struct {
	ActorID string
	Action  string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("actor %s is not allowed to %s", e.ActorID, e.Action)
}

// ConflictError reports that a reservation interval was taken by a racing
// caller. Recoverable by re-querying availability and retrying.
type ConflictError struct {
	ProfessionalID string
	Date           string
	Start          int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %d on %s for professional %s is no longer available", e.Start, e.Date, e.ProfessionalID)
}

// NotFoundError reports a stale reference, e.g. cancelling a reservation that
// is already gone. Surfaced, not retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
