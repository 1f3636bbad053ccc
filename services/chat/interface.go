package chat

import (
	"context"
	"errors"

	"vetchat/models"
)

// ErrInvalidInput is returned when the session ID or message is empty after
// trimming.
var ErrInvalidInput = errors.New("sessionId and message are required")

// Service orchestrates message handling, AI responses and appointment booking.
type Service interface {
	// ProcessMessage handles one inbound user turn end-to-end and returns the
	// bot reply. Both the user message and the reply are recorded on the
	// session, on every branch.
	ProcessMessage(ctx context.Context, sessionID, message string, userCtx map[string]string) (*models.ChatResult, error)
	// GetHistory returns the session's message log. A never-seen session ID
	// yields an empty history, not an error.
	GetHistory(ctx context.Context, sessionID string) (*models.ConversationHistory, error)
}

// IntentPolicy decides whether a message expresses appointment booking
// intent. Kept behind an interface so the keyword heuristic can be swapped
// for a classifier without touching the state machine.
type IntentPolicy interface {
	LooksLikeBookingIntent(text string) bool
}
