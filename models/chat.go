package models

import "time"

// ChatResult is the outcome of processing one inbound message.
type ChatResult struct {
	Reply                 string `json:"reply"`
	SessionID             string `json:"sessionId"`
	AppointmentInProgress bool   `json:"appointmentInProgress"`
	CurrentField          string `json:"currentField,omitempty"`
	AppointmentID         string `json:"appointmentId,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// FlowResult is the booking state machine's response for one turn.
type FlowResult struct {
	Reply                 string `json:"reply"`
	AppointmentInProgress bool   `json:"appointmentInProgress"`
	CurrentField          string `json:"currentField,omitempty"`
	AppointmentID         string `json:"appointmentId,omitempty"`
}

// ConversationHistory is the read-side view of a session. A never-seen
// session ID yields the zero shape with empty messages rather than an error.
type ConversationHistory struct {
	SessionID string            `json:"sessionId"`
	Messages  []Message         `json:"messages"`
	Context   map[string]string `json:"context"`
	CreatedAt time.Time         `json:"createdAt"`
}
