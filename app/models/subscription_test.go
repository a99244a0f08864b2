package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionIsTrialOpen(t *testing.T) {
	ends := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	sub := &Subscription{TrialEndsAt: &ends}

	assert.True(t, sub.IsTrialOpen(time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.False(t, sub.IsTrialOpen(ends))
	assert.False(t, sub.IsTrialOpen(ends.Add(time.Hour)))

	var nilSub *Subscription
	assert.False(t, nilSub.IsTrialOpen(ends))
	assert.False(t, (&Subscription{}).IsTrialOpen(ends))
}

func TestPlanPriceFor(t *testing.T) {
	p := &Plan{PriceMonthlyCents: 2900, PriceYearlyCents: 29000}

	assert.Equal(t, 2900, p.PriceFor(BillingIntervalMonth))
	assert.Equal(t, 29000, p.PriceFor(BillingIntervalYear))
	assert.Equal(t, 2900, p.PriceFor(""))
}
