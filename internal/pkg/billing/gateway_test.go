package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedGatewayApproves(t *testing.T) {
	g := NewSimulatedGateway("0000")

	result, err := g.Charge(context.Background(), 7, "visa ****4242", 2900)
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.NotEmpty(t, result.Reference)
}

func TestSimulatedGatewayDeclinesConfiguredSuffix(t *testing.T) {
	g := NewSimulatedGateway("0000")

	result, err := g.Charge(context.Background(), 7, "visa ****0000", 2900)
	require.NoError(t, err, "a decline is a result, not an error")
	assert.False(t, result.Approved)
}

func TestSimulatedGatewayRejectsBadAmount(t *testing.T) {
	g := NewSimulatedGateway("0000")

	_, err := g.Charge(context.Background(), 7, "visa ****4242", 0)
	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
}

func TestSimulatedGatewayHonorsContextCancellation(t *testing.T) {
	g := NewSimulatedGateway("0000")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Charge(ctx, 7, "visa ****4242", 2900)
	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
}
