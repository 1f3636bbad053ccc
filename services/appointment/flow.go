package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	appointmentRepo "vetchat/database/repository/appointment"
	conversationRepo "vetchat/database/repository/conversation"
	"vetchat/models"
	"vetchat/utils"

	"go.uber.org/zap"
)

// Booking field identifiers reported back to the widget.
const (
	fieldOwnerName    = "ownerName"
	fieldPetName      = "petName"
	fieldPhone        = "phone"
	fieldDateTime     = "dateTime"
	fieldConfirmation = "confirmation"
)

// DefaultFlowService implements FlowService against the session and
// appointment repositories.
type DefaultFlowService struct {
	Sessions     conversationRepo.Repository
	Appointments appointmentRepo.Repository

	// Now is the clock used for future-date validation; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultFlowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ProcessFlow advances the session's booking state machine by one user turn.
// Every transition persists the new state and the merged booking data before
// returning.
func (s *DefaultFlowService) ProcessFlow(ctx context.Context, sessionID, userInput string) (*models.FlowResult, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, conversationRepo.ErrSessionNotFound
	}

	state := session.AppointmentState
	if state == "" {
		state = models.StateIdle
	}
	data := session.AppointmentData

	switch state {
	case models.StateIdle:
		return s.startBooking(ctx, sessionID)
	case models.StateCollectOwnerName:
		return s.collectOwnerName(ctx, sessionID, userInput, data)
	case models.StateCollectPetName:
		return s.collectPetName(ctx, sessionID, userInput, data)
	case models.StateCollectPhone:
		return s.collectPhone(ctx, sessionID, userInput, data)
	case models.StateCollectDateTime:
		return s.collectDateTime(ctx, sessionID, userInput, data)
	case models.StateConfirm:
		return s.handleConfirmation(ctx, sessionID, userInput, data)
	default:
		// Corrupt stored state: recover to idle rather than getting stuck.
		utils.GetLogger().Warn("unknown booking state, resetting session",
			zap.String("sessionId", sessionID), zap.String("state", string(state)))
		if err := s.Sessions.ClearBooking(ctx, sessionID); err != nil {
			return nil, err
		}
		return &models.FlowResult{
			Reply:                 "Something went wrong. Let's start over. Would you like to book an appointment?",
			AppointmentInProgress: false,
		}, nil
	}
}

func (s *DefaultFlowService) startBooking(ctx context.Context, sessionID string) (*models.FlowResult, error) {
	if err := s.Sessions.SetBookingState(ctx, sessionID, models.StateCollectOwnerName, models.AppointmentData{}); err != nil {
		return nil, err
	}
	return &models.FlowResult{
		Reply:                 "I'd be happy to help you book an appointment! 🐾\n\nMay I have the owner's name?",
		AppointmentInProgress: true,
		CurrentField:          fieldOwnerName,
	}, nil
}

func (s *DefaultFlowService) collectOwnerName(ctx context.Context, sessionID, userInput string, data models.AppointmentData) (*models.FlowResult, error) {
	ownerName := strings.TrimSpace(userInput)
	if !validName(ownerName) {
		return &models.FlowResult{
			Reply:                 utils.MsgInvalidName,
			AppointmentInProgress: true,
			CurrentField:          fieldOwnerName,
		}, nil
	}

	data.OwnerName = ownerName
	if err := s.Sessions.SetBookingState(ctx, sessionID, models.StateCollectPetName, data); err != nil {
		return nil, err
	}
	return &models.FlowResult{
		Reply:                 fmt.Sprintf("Thank you, %s! What is your pet's name?", ownerName),
		AppointmentInProgress: true,
		CurrentField:          fieldPetName,
	}, nil
}

func (s *DefaultFlowService) collectPetName(ctx context.Context, sessionID, userInput string, data models.AppointmentData) (*models.FlowResult, error) {
	petName := strings.TrimSpace(userInput)
	if !validName(petName) {
		return &models.FlowResult{
			Reply:                 utils.MsgInvalidName,
			AppointmentInProgress: true,
			CurrentField:          fieldPetName,
		}, nil
	}

	data.PetName = petName
	if err := s.Sessions.SetBookingState(ctx, sessionID, models.StateCollectPhone, data); err != nil {
		return nil, err
	}
	return &models.FlowResult{
		Reply:                 "Great! Now, may I have your phone number?",
		AppointmentInProgress: true,
		CurrentField:          fieldPhone,
	}, nil
}

func (s *DefaultFlowService) collectPhone(ctx context.Context, sessionID, userInput string, data models.AppointmentData) (*models.FlowResult, error) {
	phone := strings.TrimSpace(userInput)
	if !validPhone(phone) {
		return &models.FlowResult{
			Reply:                 utils.MsgInvalidPhone,
			AppointmentInProgress: true,
			CurrentField:          fieldPhone,
		}, nil
	}

	data.Phone = phone
	if err := s.Sessions.SetBookingState(ctx, sessionID, models.StateCollectDateTime, data); err != nil {
		return nil, err
	}
	return &models.FlowResult{
		Reply:                 "Perfect! When would you like to schedule the appointment?\n\nPlease provide your preferred date and time (e.g., \"Tomorrow at 2pm\" or \"January 15 at 10:30am\")",
		AppointmentInProgress: true,
		CurrentField:          fieldDateTime,
	}, nil
}

func (s *DefaultFlowService) collectDateTime(ctx context.Context, sessionID, userInput string, data models.AppointmentData) (*models.FlowResult, error) {
	parsed, err := parseDateTime(strings.TrimSpace(userInput), s.now())
	if err != nil {
		return &models.FlowResult{
			Reply:                 utils.MsgInvalidDateTime + "\n\nPlease try again with a format like \"Tomorrow at 2pm\" or \"January 15 at 10:30am\"",
			AppointmentInProgress: true,
			CurrentField:          fieldDateTime,
		}, nil
	}
	if !parsed.After(s.now()) {
		return &models.FlowResult{
			Reply:                 "The appointment must be scheduled for a future date and time. Please try again.",
			AppointmentInProgress: true,
			CurrentField:          fieldDateTime,
		}, nil
	}

	data.DateTime = parsed.Format(time.RFC3339)
	if err := s.Sessions.SetBookingState(ctx, sessionID, models.StateConfirm, data); err != nil {
		return nil, err
	}
	return &models.FlowResult{
		Reply:                 confirmationSummary(data, parsed),
		AppointmentInProgress: true,
		CurrentField:          fieldConfirmation,
	}, nil
}

func (s *DefaultFlowService) handleConfirmation(ctx context.Context, sessionID, userInput string, data models.AppointmentData) (*models.FlowResult, error) {
	switch strings.ToLower(strings.TrimSpace(userInput)) {
	case "yes", "y", "confirm":
		appointmentID, err := s.saveAppointment(ctx, sessionID, data)
		if err != nil {
			return nil, err
		}
		if err := s.Sessions.ClearBooking(ctx, sessionID); err != nil {
			return nil, err
		}
		return &models.FlowResult{
			Reply: fmt.Sprintf("✅ Appointment booked successfully!\n\nAppointment ID: %s\n\nYou will receive a confirmation call/SMS shortly at %s.\n\nIs there anything else I can help you with?",
				appointmentID, data.Phone),
			AppointmentInProgress: false,
			AppointmentID:         appointmentID,
		}, nil

	case "no", "n", "cancel":
		if err := s.Sessions.ClearBooking(ctx, sessionID); err != nil {
			return nil, err
		}
		return &models.FlowResult{
			Reply:                 "No problem! The appointment has been cancelled. Feel free to book again anytime.\n\nIs there anything else I can help you with?",
			AppointmentInProgress: false,
		}, nil

	default:
		return &models.FlowResult{
			Reply:                 "Please respond with \"yes\" to confirm the appointment or \"no\" to cancel.",
			AppointmentInProgress: true,
			CurrentField:          fieldConfirmation,
		}, nil
	}
}

func (s *DefaultFlowService) saveAppointment(ctx context.Context, sessionID string, data models.AppointmentData) (string, error) {
	dateTime, err := time.Parse(time.RFC3339, data.DateTime)
	if err != nil {
		return "", fmt.Errorf("stored booking date is corrupt: %w", err)
	}

	appointmentID, err := s.Appointments.Create(ctx, models.Appointment{
		SessionID: sessionID,
		OwnerName: data.OwnerName,
		PetName:   data.PetName,
		Phone:     data.Phone,
		DateTime:  dateTime,
		Status:    models.StatusConfirmed,
	})
	if err != nil {
		return "", err
	}

	utils.GetLogger().Info("appointment created",
		zap.String("appointmentId", appointmentID),
		zap.String("sessionId", sessionID),
		zap.Time("dateTime", dateTime))
	return appointmentID, nil
}

// confirmationSummary renders the collected fields for the yes/no prompt.
func confirmationSummary(data models.AppointmentData, dateTime time.Time) string {
	return fmt.Sprintf("📋 **Appointment Summary**\n\n"+
		"👤 Owner: %s\n"+
		"🐾 Pet: %s\n"+
		"📞 Phone: %s\n"+
		"📅 Date & Time: %s\n\n"+
		"Please confirm by typing \"yes\" or cancel by typing \"no\".",
		data.OwnerName, data.PetName, data.Phone,
		dateTime.Format("Monday, January 2, 2006 at 3:04 PM"))
}
