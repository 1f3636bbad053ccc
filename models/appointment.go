package models

import "time"

// AppointmentStatus is the lifecycle status of a booked appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known appointment status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a booked veterinary appointment. Records are immutable after
// creation except for Status.
type Appointment struct {
	AppointmentID string            `bson:"appointmentId" json:"appointmentId"`
	SessionID     string            `bson:"sessionId" json:"sessionId"`
	OwnerName     string            `bson:"ownerName" json:"ownerName"`
	PetName       string            `bson:"petName" json:"petName"`
	Phone         string            `bson:"phone" json:"phone"`
	DateTime      time.Time         `bson:"dateTime" json:"dateTime"`
	Status        AppointmentStatus `bson:"status" json:"status"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updatedAt"`
}
