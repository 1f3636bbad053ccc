package appointmentRepo

import (
	"context"
	"time"

	"vetchat/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new appointment and returns its ID.
func (r *mongoAppointmentRepo) Create(ctx context.Context, appt models.Appointment) (string, error) {
	if appt.AppointmentID == "" {
		appt.AppointmentID = uuid.New().String()
	}
	if appt.Status == "" {
		appt.Status = models.StatusPending
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return "", err
	}
	return appt.AppointmentID, nil
}

// GetByID returns an appointment by its appointment ID.
func (r *mongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateStatus changes the status of an existing appointment.
func (r *mongoAppointmentRepo) UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"appointmentId": appointmentID},
		bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
