package apperr

import (
	"github.com/cockroachdb/errors"
)

// Failure classes. Errors produced anywhere in the service are marked with
// exactly one of these so callers can branch with errors.Is.
var (
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrModelCall         = errors.New("model call failed")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
)

// Camera marks err as a camera/capture failure.
func Camera(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrCameraUnavailable)
}

// Model marks err as a failed hosted-model call.
func Model(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrModelCall)
}

// Validation builds a validation error from a formatted message.
func Validation(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrValidation)
}

// WrapValidation marks an existing error as a validation failure.
func WrapValidation(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrValidation)
}

// NotFound builds a not-found error.
func NotFound(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}
