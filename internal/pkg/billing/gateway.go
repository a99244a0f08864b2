package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ManuelReschke/TableFox/internal/pkg/env"
)

// ChargeResult is the outcome of a single charge attempt. A decline is a
// regular result, not an error; errors mean the gateway itself failed.
type ChargeResult struct {
	Approved  bool
	Reference string
}

// PaymentGateway authorizes charges against a tenant's payment method. The
// real provider integration lives behind this interface and is out of scope;
// the app ships with a simulated implementation.
type PaymentGateway interface {
	Charge(ctx context.Context, tenantID uint, paymentMethod string, amountCents int) (ChargeResult, error)
}

// simulatedGateway approves everything except payment method descriptors
// ending in the configured decline suffix. An outage flag simulates
// infrastructure failure for manual testing.
type simulatedGateway struct {
	declineSuffix string
	outage        bool
}

// NewGatewayFromEnv builds the simulated gateway from environment settings.
func NewGatewayFromEnv() PaymentGateway {
	return &simulatedGateway{
		declineSuffix: env.GetEnv("PAYMENT_SIM_DECLINE_SUFFIX", "0000"),
		outage:        env.GetEnv("PAYMENT_SIM_OUTAGE", "") == "true",
	}
}

// NewSimulatedGateway builds a gateway with an explicit decline suffix.
func NewSimulatedGateway(declineSuffix string) PaymentGateway {
	return &simulatedGateway{declineSuffix: declineSuffix}
}

func (g *simulatedGateway) Charge(ctx context.Context, tenantID uint, paymentMethod string, amountCents int) (ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ChargeResult{}, &GatewayError{Cause: err}
	}
	if g.outage {
		return ChargeResult{}, &GatewayError{Cause: errors.New("simulated gateway outage")}
	}
	if amountCents <= 0 {
		return ChargeResult{}, &GatewayError{Cause: errors.New("non-positive charge amount")}
	}
	if g.declineSuffix != "" && strings.HasSuffix(strings.TrimSpace(paymentMethod), g.declineSuffix) {
		return ChargeResult{Approved: false}, nil
	}
	return ChargeResult{Approved: true, Reference: uuid.NewString()}, nil
}
