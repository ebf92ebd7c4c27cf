package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/heartlink/heartlink-api/internal/pkg/logger"
)

const exclusionKeyPrefix = "feed:excluded:"

// ExclusionCache keeps each user's exclusion set in a Redis set so the
// feed query does not recompute it on every request. Invalidation is
// synchronous: the writing transaction's caller drops the key before
// returning, so the next feed request rebuilds a fresh set.
type ExclusionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewExclusionCache creates the cache. A nil client disables caching;
// every lookup misses and every invalidation is a no-op.
func NewExclusionCache(client *redis.Client, ttl time.Duration) *ExclusionCache {
	return &ExclusionCache{client: client, ttl: ttl}
}

func exclusionKey(userID uuid.UUID) string {
	return exclusionKeyPrefix + userID.String()
}

// Get returns the cached exclusion set and whether it was present.
func (c *ExclusionCache) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool) {
	if c.client == nil {
		return nil, false
	}
	members, err := c.client.SMembers(ctx, exclusionKey(userID)).Result()
	if err != nil || len(members) == 0 {
		return nil, false
	}
	ids := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m)
		if err != nil {
			// Corrupt entry: drop the whole key and rebuild.
			c.Invalidate(ctx, userID)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// Set stores the exclusion set with the configured TTL.
func (c *ExclusionCache) Set(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) {
	if c.client == nil || len(ids) == 0 {
		return
	}
	key := exclusionKey(userID)
	members := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		members = append(members, id.String())
	}
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.LogWarn(ctx, "failed to cache exclusion set", "user_id", userID.String(), "error", err.Error())
	}
}

// Invalidate drops the cached exclusion sets for the given users. It is
// called after any swipe, match, block or unblock that changes what a
// user may see. Failures are logged, not returned: a stale set expires
// by TTL at worst.
func (c *ExclusionCache) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	if c.client == nil || len(userIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, exclusionKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.LogWarn(ctx, "failed to invalidate exclusion cache", "keys", fmt.Sprintf("%v", keys), "error", err.Error())
	}
}
