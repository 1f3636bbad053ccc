package appointment

import (
	"context"

	"vetchat/models"
)

// FlowService drives the multi-step appointment booking dialogue. Each call
// consumes one user turn and advances (or re-prompts) the session's booking
// state machine.
type FlowService interface {
	ProcessFlow(ctx context.Context, sessionID, userInput string) (*models.FlowResult, error)
}
