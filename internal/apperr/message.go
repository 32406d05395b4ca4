package apperr

import (
	"github.com/cockroachdb/errors"
)

// Operation names the user action that failed, which selects the wording
// of the notification.
type Operation string

const (
	OpCamera   Operation = "camera"
	OpIdentify Operation = "identify"
	OpExplain  Operation = "explain"
	OpCatalog  Operation = "catalog"
)

// Notice is the user-facing notification for a failure.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	cameraMessage     = "Could not access camera. Please ensure you have a camera connected and have granted permission to use it."
	noCameraMessage   = "Your browser does not support camera access."
	identifyRetryHint = "Could not identify the equipment. Please try again with a clearer image."
)

// UserMessage maps an error to the notification shown to the user. The
// message never leaks internal error text except for validation failures,
// whose text is written for users.
func UserMessage(op Operation, err error) Notice {
	switch {
	case err == nil:
		return Notice{}
	case errors.Is(err, ErrCameraUnavailable):
		if errors.Is(err, ErrNoCamera) {
			return Notice{Title: "Error", Message: noCameraMessage}
		}
		return Notice{Title: "Error", Message: cameraMessage}
	case errors.Is(err, ErrValidation):
		return Notice{Title: "Invalid input", Message: errors.UnwrapAll(err).Error()}
	case errors.Is(err, ErrNotFound):
		return Notice{Title: "Not found", Message: errors.UnwrapAll(err).Error()}
	}

	switch op {
	case OpIdentify, OpCamera:
		return Notice{Title: "Identification Failed", Message: "We couldn't identify the equipment. Please try again."}
	case OpExplain:
		return Notice{Title: "An error occurred", Message: "Could not fetch details. Please try again later."}
	default:
		return Notice{Title: "An error occurred", Message: "Something went wrong. Please try again."}
	}
}

// ScanHint is the inline error shown next to the capture control after a
// failed capture or identification.
func ScanHint(err error) string {
	if errors.Is(err, ErrCameraUnavailable) || errors.Is(err, ErrValidation) {
		return UserMessage(OpCamera, err).Message
	}
	return identifyRetryHint
}

// ErrNoCamera marks the case where no capture device exists at all, as
// opposed to one that was denied or failed.
var ErrNoCamera = errors.New("no capture device")

// NoCamera builds a camera error for a missing capture device.
func NoCamera(msg string) error {
	return errors.Mark(errors.Mark(errors.New(msg), ErrNoCamera), ErrCameraUnavailable)
}
