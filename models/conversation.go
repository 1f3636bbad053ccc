package models

import "time"

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// AppointmentState tracks where a session is in the booking dialogue.
type AppointmentState string

const (
	StateIdle             AppointmentState = "idle"
	StateCollectOwnerName AppointmentState = "collect_owner_name"
	StateCollectPetName   AppointmentState = "collect_pet_name"
	StateCollectPhone     AppointmentState = "collect_phone"
	StateCollectDateTime  AppointmentState = "collect_datetime"
	StateConfirm          AppointmentState = "confirm"
	// StateComplete is declared for parity with the state enumeration but is
	// never assigned; a confirmed or cancelled booking re-enters StateIdle.
	StateComplete AppointmentState = "complete"
)

// Message is a single chat turn entry. The message log is append-only and
// chronological.
type Message struct {
	Sender    Sender    `bson:"sender" json:"sender"`
	Text      string    `bson:"text" json:"text"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// AppointmentData holds the booking fields collected so far. A field is only
// present once its input has passed validation.
type AppointmentData struct {
	OwnerName string `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	PetName   string `bson:"petName,omitempty" json:"petName,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	DateTime  string `bson:"dateTime,omitempty" json:"dateTime,omitempty"` // RFC 3339
}

// Conversation is one chat session, keyed by the client-supplied session ID.
type Conversation struct {
	SessionID        string            `bson:"sessionId" json:"sessionId"`
	Messages         []Message         `bson:"messages" json:"messages"`
	Context          map[string]string `bson:"context,omitempty" json:"context,omitempty"`
	AppointmentState AppointmentState  `bson:"appointmentState" json:"appointmentState"`
	AppointmentData  AppointmentData   `bson:"appointmentData,omitempty" json:"appointmentData,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// InBookingFlow reports whether a booking dialogue is currently active.
func (c *Conversation) InBookingFlow() bool {
	return c.AppointmentState != "" && c.AppointmentState != StateIdle
}
