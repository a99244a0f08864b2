package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/TableFox/internal/pkg/cache"
	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
)

// stateCacheTTL bounds how long a last-known state may serve as fallback
// while the record store is unreachable.
const stateCacheTTL = 15 * time.Minute

// StateCache remembers the last successfully evaluated subscription state
// per tenant, so a transient storage failure degrades to the previous
// verdict instead of a spurious lockout.
type StateCache interface {
	Get(ctx context.Context, tenantID uint) (entitlements.SubscriptionState, bool, error)
	Set(ctx context.Context, tenantID uint, state entitlements.SubscriptionState) error
	Delete(ctx context.Context, tenantID uint) error
}

type redisStateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStateCache creates a state cache on the shared Redis client.
func NewStateCache() StateCache {
	return &redisStateCache{client: cache.GetClient(), ttl: stateCacheTTL}
}

// NewStateCacheWithClient creates a state cache on an explicit client.
// Tests use this with miniredis.
func NewStateCacheWithClient(client *redis.Client, ttl time.Duration) StateCache {
	return &redisStateCache{client: client, ttl: ttl}
}

func stateCacheKey(tenantID uint) string {
	return fmt.Sprintf("substate:%d", tenantID)
}

func (c *redisStateCache) Get(ctx context.Context, tenantID uint) (entitlements.SubscriptionState, bool, error) {
	var state entitlements.SubscriptionState
	raw, err := c.client.Get(ctx, stateCacheKey(tenantID)).Result()
	if err == redis.Nil {
		return state, false, nil
	}
	if err != nil {
		return state, false, err
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return state, false, err
	}
	return state, true, nil
}

func (c *redisStateCache) Set(ctx context.Context, tenantID uint, state entitlements.SubscriptionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, stateCacheKey(tenantID), raw, c.ttl).Err()
}

func (c *redisStateCache) Delete(ctx context.Context, tenantID uint) error {
	return c.client.Del(ctx, stateCacheKey(tenantID)).Err()
}
