package intelligence

import (
	"context"

	"vetchat/models"
)

// Service generates chat replies restricted to veterinary topics.
type Service interface {
	// GenerateReply produces a reply to message given the trailing
	// conversation history. One generation call per message; no retries.
	GenerateReply(ctx context.Context, message string, history []models.Message) (string, error)
	// IsVeterinaryTopic classifies whether a message is on-topic. Defaults to
	// true when the classifier call fails, so legitimate queries are never
	// blocked by a classifier outage.
	IsVeterinaryTopic(ctx context.Context, message string) bool
}
