// Package dedup provides an optional duplicate-submission guard keyed on
// client-generated submission IDs. Without it, resubmission produces a
// duplicate row and a duplicate email, exactly like the original form.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adlweddings/wedding-lead-platform/pkg/logging"
)

const keyPrefix = "lead:submission:"

// RedisGuard remembers submission IDs in Redis for a TTL.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewRedisGuard creates a guard, or nil when no client is configured.
func NewRedisGuard(client *redis.Client, ttl time.Duration, logger *logging.Logger) *RedisGuard {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisGuard{client: client, ttl: ttl, logger: logger}
}

// FirstSeen reports whether key has not been seen within the TTL, claiming it
// atomically when new.
func (g *RedisGuard) FirstSeen(ctx context.Context, key string) (bool, error) {
	set, err := g.client.SetNX(ctx, keyPrefix+key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: setnx: %w", err)
	}
	return set, nil
}
