package conversationRepo

import (
	"context"
	"time"

	"vetchat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetOrCreate returns the conversation for sessionID, creating it if absent.
func (r *mongoConversationRepo) GetOrCreate(ctx context.Context, sessionID string, userCtx map[string]string) (*models.Conversation, error) {
	conv, err := r.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if conv == nil {
		now := time.Now()
		conv = &models.Conversation{
			SessionID:        sessionID,
			Messages:         []models.Message{},
			Context:          userCtx,
			AppointmentState: models.StateIdle,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if _, err := r.coll.InsertOne(ctx, conv); err != nil {
			return nil, err
		}
		r.cache.set(ctx, conv)
		return conv, nil
	}

	if len(userCtx) > 0 {
		if conv.Context == nil {
			conv.Context = make(map[string]string, len(userCtx))
		}
		set := bson.M{"updatedAt": time.Now()}
		for k, v := range userCtx {
			conv.Context[k] = v
			set["context."+k] = v
		}
		if _, err := r.coll.UpdateOne(ctx, bson.M{"sessionId": sessionID}, bson.M{"$set": set}); err != nil {
			return nil, err
		}
		r.cache.invalidate(ctx, sessionID)
	}

	return conv, nil
}

// Get returns the conversation, or (nil, nil) if the session does not exist.
func (r *mongoConversationRepo) Get(ctx context.Context, sessionID string) (*models.Conversation, error) {
	if conv := r.cache.get(ctx, sessionID); conv != nil {
		return conv, nil
	}

	var conv models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&conv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, &conv)
	return &conv, nil
}

// AppendMessage pushes one entry onto the session's message log.
func (r *mongoConversationRepo) AppendMessage(ctx context.Context, sessionID string, sender models.Sender, text string) error {
	msg := models.Message{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{
			"$push": bson.M{"messages": msg},
			"$set":  bson.M{"updatedAt": msg.Timestamp},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	r.cache.invalidate(ctx, sessionID)
	return nil
}

// SetBookingState persists the new booking state and the merged booking data.
func (r *mongoConversationRepo) SetBookingState(ctx context.Context, sessionID string, state models.AppointmentState, data models.AppointmentData) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{"$set": bson.M{
			"appointmentState": state,
			"appointmentData":  data,
			"updatedAt":        time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	r.cache.invalidate(ctx, sessionID)
	return nil
}

// ClearBooking resets the session to idle with empty booking data.
func (r *mongoConversationRepo) ClearBooking(ctx context.Context, sessionID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{"$set": bson.M{
			"appointmentState": models.StateIdle,
			"appointmentData":  models.AppointmentData{},
			"updatedAt":        time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	r.cache.invalidate(ctx, sessionID)
	return nil
}
