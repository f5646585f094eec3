package session

import (
	"context"
	"errors"
)

// Flash is a one-shot message shown on the next rendered page.
// Category matches the bootstrap alert classes used by the templates
// ("success" or "danger").
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Store tracks browser sessions: an optional logged-in user id plus any
// flash messages pending for the next page render.
type Store interface {
	Create(ctx context.Context) (string, error)

	SetUserID(ctx context.Context, sessionID string, userID uint) error

	UserID(ctx context.Context, sessionID string) (uint, bool, error)

	AddFlash(ctx context.Context, sessionID string, flash Flash) error

	PopFlashes(ctx context.Context, sessionID string) ([]Flash, error)

	Delete(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("session not found")
