package server

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/agenthands/labscan/internal/apperr"
	"github.com/agenthands/labscan/internal/capture"
)

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, capture.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrCameraUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrModelCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError records err for the request log and writes the user-facing
// notice.
func respondError(c *gin.Context, op apperr.Operation, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": apperr.UserMessage(op, err)})
}

func badRequest(c *gin.Context, err error) {
	respondError(c, apperr.OpCatalog, apperr.WrapValidation(err, "invalid request"))
}

func respondScanError(c *gin.Context, err error, hint string) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), ScanError{
		Error: apperr.UserMessage(apperr.OpIdentify, err),
		Hint:  hint,
	})
}
