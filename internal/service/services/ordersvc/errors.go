package ordersvc

import "errors"

var (
	// ErrNotFound is returned when no order matches the lookup.
	ErrNotFound = errors.New("order not found")

	// ErrNotCancellable is returned when the cancel guard fails because the
	// order is no longer pending.
	ErrNotCancellable = errors.New("order is not cancellable")
)

// ValidationError reports malformed input detected before any store call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}
