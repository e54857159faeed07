package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const activeFlagTTL = time.Minute

// ActiveFlagCache caches account active flags in Redis so token validation
// can re-check its subject without hitting the credential store on every
// request. Entries expire quickly; a deactivated account is locked out
// within activeFlagTTL at worst.
// Key format: active:<username>
type ActiveFlagCache struct {
	client *redis.Client
}

// NewActiveFlagCache creates an ActiveFlagCache wrapping the given client.
func NewActiveFlagCache(client *redis.Client) *ActiveFlagCache {
	return &ActiveFlagCache{client: client}
}

// Lookup returns the cached flag for username; ok is false on a miss.
func (c *ActiveFlagCache) Lookup(ctx context.Context, username string) (active, ok bool, err error) {
	val, err := c.client.Get(ctx, c.key(username)).Result()
	if err == redis.Nil {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("active flag lookup: %w", err)
	}
	return val == "1", true, nil
}

// Store records the flag for username (expires after activeFlagTTL).
func (c *ActiveFlagCache) Store(ctx context.Context, username string, active bool) error {
	val := "0"
	if active {
		val = "1"
	}
	return c.client.Set(ctx, c.key(username), val, activeFlagTTL).Err()
}

func (c *ActiveFlagCache) key(username string) string {
	return "active:" + username
}
