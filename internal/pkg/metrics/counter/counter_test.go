package counter

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/TableFox/internal/pkg/cache"
)

func TestDecisionCountersRoundTrip(t *testing.T) {
	s := miniredis.RunT(t)
	t.Setenv("CACHE_HOST", s.Host())
	t.Setenv("CACHE_PORT", s.Port())
	cache.SetupCache()

	require.NoError(t, AddGateDecision("allow"))
	require.NoError(t, AddGateDecision("allow"))
	require.NoError(t, AddGateDecision("block"))
	require.NoError(t, AddTenantBlock(7))
	require.NoError(t, AddLifecycleOp("subscribe_ok"))

	totals, err := GetDecisionTotals()
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals["allow"])
	assert.Equal(t, int64(1), totals["block"])
	assert.NotContains(t, totals, "warn")
}
