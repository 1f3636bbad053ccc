package conversationRepo

import (
	"context"
	"errors"

	"vetchat/database"
	"vetchat/models"
	"vetchat/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned by write operations targeting a session that
// was never created. Callers must GetOrCreate before appending.
var ErrSessionNotFound = errors.New("session not found")

// Repository persists one Conversation document per session ID.
type Repository interface {
	// GetOrCreate returns the session, creating it lazily on first contact.
	// A non-empty userCtx is shallow-merged into the stored context.
	GetOrCreate(ctx context.Context, sessionID string, userCtx map[string]string) (*models.Conversation, error)
	// Get returns the session, or (nil, nil) if it does not exist.
	Get(ctx context.Context, sessionID string) (*models.Conversation, error)
	// AppendMessage adds one entry to the session's message log.
	AppendMessage(ctx context.Context, sessionID string, sender models.Sender, text string) error
	// SetBookingState stores the new state together with the merged booking data.
	SetBookingState(ctx context.Context, sessionID string, state models.AppointmentState, data models.AppointmentData) error
	// ClearBooking resets the booking state to idle and empties the booking data.
	ClearBooking(ctx context.Context, sessionID string) error
}

type mongoConversationRepo struct {
	coll  *mongo.Collection
	cache *sessionCache
}

// NewMongoConversationRepo returns a Repository backed by MongoDB, with an
// optional Redis read-through cache (pass a nil client to disable caching).
func NewMongoConversationRepo(cacheClient *redis.Client) Repository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoConversationRepo{
		coll: db.Collection("conversations"),
	}
	if cacheClient != nil {
		repo.cache = newSessionCache(cacheClient)
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create conversation indexes", zap.Error(err))
	}
	return repo
}
