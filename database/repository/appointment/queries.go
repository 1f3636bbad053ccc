package appointmentRepo

import (
	"context"

	"vetchat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns appointments matching the filter, creation time descending.
func (r *mongoAppointmentRepo) List(ctx context.Context, filter ListFilter) ([]models.Appointment, error) {
	query := bson.M{}
	if filter.SessionID != "" {
		query["sessionId"] = filter.SessionID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["dateTime"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
