package booking

import "errors"

var (
	ErrConflict  = errors.New("timeslot already booked")
	ErrNotFound  = errors.New("appointment not found")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError reports input that fails the booking invariants.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
