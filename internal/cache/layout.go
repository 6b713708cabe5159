// Package cache stores rendered public seat layouts in Redis so guests can
// browse rooms without hitting the database.  Entries are dropped whenever
// a room's layout is saved or the room is deleted.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
)

// LayoutCache caches layout payloads per room.  A nil *LayoutCache, or
// one built without a Redis client, is a valid no-op cache.
type LayoutCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewLayoutCache returns a cache, or nil when caching is disabled or rdb is nil.
func NewLayoutCache(cfg config.LayoutCacheConfig, rdb *redis.Client) *LayoutCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &LayoutCache{rdb: rdb, ttl: cfg.TTL, prefix: cfg.Prefix}
}

func (c *LayoutCache) key(roomID uint64) string {
	return c.prefix + ":room:" + strconv.FormatUint(roomID, 10)
}

// Get returns the cached payload for roomID.  ok is false on a miss.
func (c *LayoutCache) Get(ctx context.Context, roomID uint64) (payload []byte, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	b, err := c.rdb.Get(ctx, c.key(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Set stores payload for roomID.
func (c *LayoutCache) Set(ctx context.Context, roomID uint64, payload []byte) error {
	if c == nil {
		return nil
	}
	return c.rdb.Set(ctx, c.key(roomID), payload, c.ttl).Err()
}

// Invalidate drops the cached payload for roomID.
func (c *LayoutCache) Invalidate(ctx context.Context, roomID uint64) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.key(roomID)).Err()
}
