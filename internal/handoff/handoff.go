// Package handoff carries data from the capture step to the detail view,
// standing in for the browser session storage the two pages shared.
// Values are read once: Take returns and removes them.
package handoff

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/agenthands/labscan/internal/apperr"
)

type Key string

const (
	KeyCapturedImage Key = "capturedEquipmentImage"
	KeyAutoPlayAudio Key = "autoPlayAudio"
)

type Store interface {
	Put(ctx context.Context, session string, key Key, value string) error
	// Take returns the value and removes it. A missing or expired value
	// returns ok == false and no error.
	Take(ctx context.Context, session string, key Key) (value string, ok bool, err error)
	Close() error
}

// NewSession issues an opaque session id.
func NewSession() string {
	return uuid.NewString()
}

// ValidSession reports whether s looks like an id from NewSession.
func ValidSession(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

func checkSession(session string) error {
	if !ValidSession(session) {
		return apperr.Validation("invalid session id")
	}
	return nil
}
