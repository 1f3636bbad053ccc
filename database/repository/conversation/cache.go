package conversationRepo

import (
	"context"
	"encoding/json"

	"vetchat/models"
	"vetchat/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// sessionCache is a read-through Redis cache for conversation documents.
// All methods are nil-receiver safe so the repo works without Redis in tests.
type sessionCache struct {
	client *redis.Client
}

func newSessionCache(client *redis.Client) *sessionCache {
	return &sessionCache{client: client}
}

func (c *sessionCache) get(ctx context.Context, sessionID string) *models.Conversation {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, utils.ChatCachePrefix+sessionID).Result()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("conversation cache read failed", zap.Error(err))
		}
		return nil
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		utils.GetLogger().Warn("conversation cache entry corrupt", zap.String("sessionId", sessionID), zap.Error(err))
		return nil
	}
	return &conv
}

func (c *sessionCache) set(ctx context.Context, conv *models.Conversation) {
	if c == nil {
		return
	}
	b, err := json.Marshal(conv)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, utils.ChatCachePrefix+conv.SessionID, b, utils.ChatCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("conversation cache write failed", zap.Error(err))
	}
}

func (c *sessionCache) invalidate(ctx context.Context, sessionID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, utils.ChatCachePrefix+sessionID).Err(); err != nil {
		utils.GetLogger().Warn("conversation cache invalidation failed", zap.Error(err))
	}
}
