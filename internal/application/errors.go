package application

import "errors"

// Service-level errors. Handlers map these onto HTTP statuses; anything not
// listed here surfaces as an internal error with the detail suppressed
// outside development.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("forbidden")

	// Booking workflow
	ErrDayUnavailable  = errors.New("practitioner not available on selected day")
	ErrSlotUnavailable = errors.New("time slot not available")
	// Only pending appointments may be confirmed or cancelled.
	ErrInvalidTransition = errors.New("appointment is already resolved")
)

// ValidationError carries a field-level message for malformed input that gets
// past request binding (range checks, HH:MM shape, slot ordering).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
