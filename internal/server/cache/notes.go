// Package cache caches per-user note lists in Redis. The cache is purely an
// accelerator for ListNotes; correctness never depends on it.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rjrato/Write-it-V2-Backend/internal/server/models"
)

const keyPrefix = "notes:user:"

// NoteCache stores a user's resolved note list under a TTL and drops it on
// any note mutation for that user.
type NoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewNoteCache returns a new NoteCache.
func NewNoteCache(rdb *redis.Client, ttl time.Duration) *NoteCache {
	return &NoteCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached list for userID, or nil on miss.
func (c *NoteCache) Get(ctx context.Context, userID string) ([]*models.Note, error) {
	b, err := c.rdb.Get(ctx, keyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// An empty cached list decodes to a non-nil slice, so it is
	// distinguishable from a miss.
	list := []*models.Note{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Set stores the list for userID.
func (c *NoteCache) Set(ctx context.Context, userID string, list []*models.Note) error {
	if list == nil {
		list = []*models.Note{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+userID, b, c.ttl).Err()
}

// Invalidate removes the cached list for userID (cache invalidation on write).
func (c *NoteCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, keyPrefix+userID).Err()
}
