package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"vetchat/database"
	"vetchat/models"
	"vetchat/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrAppointmentNotFound is returned when no appointment matches the given ID.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ListFilter narrows appointment queries. Zero values mean "no constraint".
type ListFilter struct {
	SessionID string
	Status    models.AppointmentStatus
	From      time.Time
	To        time.Time
}

// Repository persists appointments created by the booking flow.
type Repository interface {
	// Create inserts a new appointment and returns its generated ID.
	Create(ctx context.Context, appt models.Appointment) (string, error)
	// GetByID returns one appointment by its appointment ID.
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// List returns appointments matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]models.Appointment, error)
	// UpdateStatus changes the status of an existing appointment.
	UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns a Repository backed by MongoDB.
func NewMongoAppointmentRepo() Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}
