package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/TableFox/app/models"
	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
)

type memStateCache struct {
	mu     sync.Mutex
	states map[uint]entitlements.SubscriptionState
}

func newMemStateCache() *memStateCache {
	return &memStateCache{states: make(map[uint]entitlements.SubscriptionState)}
}

func (c *memStateCache) Get(_ context.Context, tenantID uint) (entitlements.SubscriptionState, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.states[tenantID]
	return state, ok, nil
}

func (c *memStateCache) Set(_ context.Context, tenantID uint, state entitlements.SubscriptionState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[tenantID] = state
	return nil
}

func (c *memStateCache) Delete(_ context.Context, tenantID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, tenantID)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestResolveEvaluatesAndCachesState(t *testing.T) {
	repo := newFakeRepository()
	cache := newMemStateCache()
	now := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	resolver := NewStateResolver(repo, cache).WithClock(fixedClock(now))

	ends := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	started := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.current[7] = &models.Subscription{
		ID:             "sub-1",
		TenantID:       7,
		TrialStartedAt: &started,
		TrialEndsAt:    &ends,
	}

	state := resolver.Resolve(context.Background(), 7)

	assert.True(t, state.IsInTrial)
	assert.Equal(t, 5, state.DaysLeftInTrial)
	assert.False(t, state.IsLoading)

	cached, ok, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, state, cached)
}

func TestResolveFallsBackToLastKnownStateOnStorageFailure(t *testing.T) {
	repo := newFakeRepository()
	cache := newMemStateCache()
	now := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	resolver := NewStateResolver(repo, cache).WithClock(fixedClock(now))

	next := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	repo.current[7] = &models.Subscription{
		ID:            "sub-1",
		TenantID:      7,
		Status:        models.SubscriptionStatusActive,
		NextBillingAt: &next,
	}

	healthy := resolver.Resolve(context.Background(), 7)
	require.True(t, healthy.HasActiveSubscription)

	// Storage goes down: the previous verdict keeps serving, no lockout.
	repo.readErr = &StorageError{Op: "read", Cause: errors.New("connection refused")}
	degraded := resolver.Resolve(context.Background(), 7)

	assert.Equal(t, healthy, degraded)
	assert.False(t, degraded.Unverified)
}

func TestResolveColdStorageFailureIsUnverifiedNotBlocked(t *testing.T) {
	repo := newFakeRepository()
	repo.readErr = &StorageError{Op: "read", Cause: errors.New("connection refused")}
	resolver := NewStateResolver(repo, newMemStateCache())

	state := resolver.Resolve(context.Background(), 7)

	assert.True(t, state.IsLoading)
	assert.True(t, state.Unverified)
	assert.Equal(t, entitlements.ActionAllow, entitlements.Decide(state).Action,
		"verification failure must not block")
	assert.False(t, state.HasActiveSubscription, "and must not grant either")
}

func TestResolveNoRecordIsLoadingState(t *testing.T) {
	repo := newFakeRepository()
	resolver := NewStateResolver(repo, newMemStateCache())

	state := resolver.Resolve(context.Background(), 99)

	assert.True(t, state.IsLoading)
	assert.False(t, state.Unverified)
}

func TestResolveInvalidateDropsCache(t *testing.T) {
	repo := newFakeRepository()
	cache := newMemStateCache()
	resolver := NewStateResolver(repo, cache)

	require.NoError(t, cache.Set(context.Background(), 7, entitlements.SubscriptionState{HasActiveSubscription: true}))
	resolver.Invalidate(context.Background(), 7)

	_, ok, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok)
}
