package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error taxonomy surfaced by the service layer. Controllers translate these
// to HTTP statuses; nothing here is retried or silently recovered.
var (
	// ErrConflict: the requested time slot overlaps an existing
	// non-cancelled appointment for the professional.
	ErrConflict = errors.New("time slot unavailable")

	// ErrInvalidTransition: the appointment status change is not permitted.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation: malformed input (non-positive quantity, bad reference).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound: the referenced entity does not exist or belongs to a
	// different business. May indicate a tenant-isolation bug, so callers
	// log it.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: finance password verification failed.
	ErrUnauthorized = errors.New("unauthorized")
)

// PartialRescheduleError reports a reschedule whose cancel step committed
// but whose re-creation failed. The original slot is gone; the caller must
// rebook manually rather than retry.
type PartialRescheduleError struct {
	CancelledID uuid.UUID
	Err         error
}

func (e *PartialRescheduleError) Error() string {
	return fmt.Sprintf("reschedule partially failed: original appointment %s cancelled, rebooking failed: %v", e.CancelledID, e.Err)
}

func (e *PartialRescheduleError) Unwrap() error {
	return e.Err
}
