package customerr

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrMalformedData      = errors.New("stored value is malformed")
	ErrQuotaExceeded      = errors.New("storage quota exceeded")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// WriteError is returned when the persistence medium rejects a write.
// Whatever the caller showed before the write is still the truth.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func IsWriteFailure(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// ValidationError marks input rejected before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidationMessage returns the message of a wrapped ValidationError or "".
func ValidationMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}
