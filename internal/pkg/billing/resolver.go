package billing

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
)

// StateResolver turns a tenant id into the current SubscriptionState. It is
// the single privilege lookup for all consumers: primary read from the
// record store, internal fallback to the last-known cached state on storage
// failure, and a distinguishable unverified state when neither is available.
// Callers never branch on two data sources themselves.
type StateResolver struct {
	repo  Repository
	cache StateCache
	now   func() time.Time
}

// NewStateResolver creates a resolver from injected collaborators.
func NewStateResolver(repo Repository, cache StateCache) *StateResolver {
	return &StateResolver{repo: repo, cache: cache, now: time.Now}
}

// NewStateResolverFromDB creates a resolver on the default DB repository and
// the shared Redis state cache.
func NewStateResolverFromDB(db *gorm.DB) *StateResolver {
	return NewStateResolver(NewRepository(db), NewStateCache())
}

// WithClock replaces the resolver clock. Tests use this to pin time.
func (r *StateResolver) WithClock(now func() time.Time) *StateResolver {
	r.now = now
	return r
}

// Resolve evaluates the tenant's subscription record at the current instant.
//
// On a storage failure the last successfully evaluated state is returned
// instead of defaulting to block; with no cached state either, the result is
// a loading state flagged Unverified, which callers surface as "unable to
// verify subscription" without granting or revoking anything silently.
func (r *StateResolver) Resolve(ctx context.Context, tenantID uint) entitlements.SubscriptionState {
	record, err := r.repo.GetCurrentByTenant(tenantID)
	if err != nil {
		var storageErr *StorageError
		if errors.As(err, &storageErr) {
			log.Warnf("subscription read failed for tenant %d, using last known state: %v", tenantID, err)
		} else {
			log.Errorf("subscription read failed for tenant %d: %v", tenantID, err)
		}
		if cached, ok, cacheErr := r.cache.Get(ctx, tenantID); cacheErr == nil && ok {
			return cached
		}
		return entitlements.SubscriptionState{IsLoading: true, Unverified: true}
	}

	state := entitlements.Evaluate(record, r.now())
	if state.Stale {
		// A lapsed active record is re-read once instead of trusted; under
		// the poll model a renewal may have landed since the first fetch.
		if fresh, err := r.repo.GetCurrentByTenant(tenantID); err == nil {
			state = entitlements.Evaluate(fresh, r.now())
		}
	}

	if err := r.cache.Set(ctx, tenantID, state); err != nil {
		log.Warnf("state cache write failed for tenant %d: %v", tenantID, err)
	}
	return state
}

// Invalidate drops the cached state after a lifecycle mutation so the next
// read re-evaluates the fresh record.
func (r *StateResolver) Invalidate(ctx context.Context, tenantID uint) {
	if err := r.cache.Delete(ctx, tenantID); err != nil {
		log.Warnf("state cache invalidation failed for tenant %d: %v", tenantID, err)
	}
}
