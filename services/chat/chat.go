package chat

import (
	"context"
	"strings"

	conversationRepo "vetchat/database/repository/conversation"
	"vetchat/models"
	"vetchat/services/appointment"
	"vetchat/services/intelligence"
	"vetchat/utils"

	"go.uber.org/zap"
)

const (
	aiFallbackReply      = "I apologize, but I'm having trouble processing your request right now. Please try again in a moment."
	bookingFallbackReply = "Sorry, something went wrong with the booking process. Let's start fresh. How can I help you?"
)

// DefaultChatService implements Service.
type DefaultChatService struct {
	Sessions conversationRepo.Repository
	Booking  appointment.FlowService
	AI       intelligence.Service
	Intent   IntentPolicy
}

// ProcessMessage routes one user turn to either the booking state machine or
// the AI responder, recording both sides of the turn on the session.
func (s *DefaultChatService) ProcessMessage(ctx context.Context, sessionID, message string, userCtx map[string]string) (*models.ChatResult, error) {
	sessionID = strings.TrimSpace(sessionID)
	message = strings.TrimSpace(message)
	if sessionID == "" || message == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.Sessions.GetOrCreate(ctx, sessionID, userCtx)
	if err != nil {
		return nil, err
	}

	if err := s.Sessions.AppendMessage(ctx, sessionID, models.SenderUser, message); err != nil {
		return nil, err
	}

	// A session already mid-booking always feeds the state machine; the
	// message is the answer to the current pending field, never re-routed.
	if session.InBookingFlow() || s.Intent.LooksLikeBookingIntent(message) {
		return s.handleAppointmentFlow(ctx, sessionID, message)
	}

	return s.handleChatMessage(ctx, session, message)
}

func (s *DefaultChatService) handleChatMessage(ctx context.Context, session *models.Conversation, message string) (*models.ChatResult, error) {
	history := session.Messages
	if len(history) > utils.HistoryWindow {
		history = history[len(history)-utils.HistoryWindow:]
	}

	reply, err := s.AI.GenerateReply(ctx, message, history)
	if err != nil {
		utils.GetLogger().Error("AI generation failed",
			zap.String("sessionId", session.SessionID), zap.Error(err))

		if err := s.Sessions.AppendMessage(ctx, session.SessionID, models.SenderBot, aiFallbackReply); err != nil {
			return nil, err
		}
		return &models.ChatResult{
			Reply:     aiFallbackReply,
			SessionID: session.SessionID,
			Error:     "AI service temporarily unavailable",
		}, nil
	}

	if err := s.Sessions.AppendMessage(ctx, session.SessionID, models.SenderBot, reply); err != nil {
		return nil, err
	}
	return &models.ChatResult{
		Reply:     reply,
		SessionID: session.SessionID,
	}, nil
}

func (s *DefaultChatService) handleAppointmentFlow(ctx context.Context, sessionID, message string) (*models.ChatResult, error) {
	result, err := s.Booking.ProcessFlow(ctx, sessionID, message)
	if err != nil {
		utils.GetLogger().Error("appointment flow failed",
			zap.String("sessionId", sessionID), zap.Error(err))

		// Fail open to idle rather than leaving the session stuck mid-flow.
		if err := s.Sessions.ClearBooking(ctx, sessionID); err != nil {
			return nil, err
		}
		if err := s.Sessions.AppendMessage(ctx, sessionID, models.SenderBot, bookingFallbackReply); err != nil {
			return nil, err
		}
		return &models.ChatResult{
			Reply:     bookingFallbackReply,
			SessionID: sessionID,
			Error:     "Appointment booking error",
		}, nil
	}

	if err := s.Sessions.AppendMessage(ctx, sessionID, models.SenderBot, result.Reply); err != nil {
		return nil, err
	}
	return &models.ChatResult{
		Reply:                 result.Reply,
		SessionID:             sessionID,
		AppointmentInProgress: result.AppointmentInProgress,
		CurrentField:          result.CurrentField,
		AppointmentID:         result.AppointmentID,
	}, nil
}

// GetHistory returns the session's messages and context.
func (s *DefaultChatService) GetHistory(ctx context.Context, sessionID string) (*models.ConversationHistory, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return &models.ConversationHistory{
			SessionID: sessionID,
			Messages:  []models.Message{},
			Context:   map[string]string{},
		}, nil
	}

	history := &models.ConversationHistory{
		SessionID: session.SessionID,
		Messages:  session.Messages,
		Context:   session.Context,
		CreatedAt: session.CreatedAt,
	}
	if history.Messages == nil {
		history.Messages = []models.Message{}
	}
	if history.Context == nil {
		history.Context = map[string]string{}
	}
	return history, nil
}
