package counter

import (
	"context"
	"strconv"

	"github.com/ManuelReschke/TableFox/internal/pkg/cache"
)

const (
	gateDecisionsKey = "gate:counters:decisions"
	tenantBlocksKey  = "gate:counters:blocks"
	lifecycleOpsKey  = "billing:counters:operations"
)

// AddGateDecision increments the counter for an access gate verdict (allow,
// warn, block) in Redis. Best-effort; callers ignore the error.
func AddGateDecision(action string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, gateDecisionsKey, action, 1).Err()
}

// AddTenantBlock increments the block counter for a single tenant.
func AddTenantBlock(tenantID uint) error {
	ctx := context.Background()
	field := strconv.FormatUint(uint64(tenantID), 10)
	return cache.GetClient().HIncrBy(ctx, tenantBlocksKey, field, 1).Err()
}

// AddLifecycleOp increments the counter for a lifecycle operation outcome,
// e.g. "subscribe_ok" or "subscribe_failed".
func AddLifecycleOp(outcome string) error {
	ctx := context.Background()
	return cache.GetClient().HIncrBy(ctx, lifecycleOpsKey, outcome, 1).Err()
}

// GetDecisionTotals returns the current gate decision counters.
func GetDecisionTotals() (map[string]int64, error) {
	ctx := context.Background()
	data, err := cache.GetClient().HGetAll(ctx, gateDecisionsKey).Result()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]int64, len(data))
	for k, v := range data {
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			continue
		}
		totals[k] = n
	}
	return totals, nil
}
