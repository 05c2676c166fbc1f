package models

import (
	"errors"
	"fmt"
)

// Domain errors shared by the store and service layers. Handlers map them
// to HTTP status codes with errors.Is.
var (
	ErrNotFound                  = errors.New("not found")
	ErrValidation                = errors.New("validation failed")
	ErrDuplicateEmail            = errors.New("an account with this email already exists")
	ErrSlotNotFound              = errors.New("slot not found for this date")
	ErrSlotUnavailable           = errors.New("slot is no longer available")
	ErrInvalidTransition         = errors.New("illegal appointment status change")
	ErrDoctorHasOpenAppointments = errors.New("doctor still has open appointments")
	ErrForbidden                 = errors.New("permission denied")
)

// Validationf wraps ErrValidation with a user-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
