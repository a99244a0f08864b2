package entitlements

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/TableFox/app/models"
)

func ts(year, month, day, hour int) time.Time {
	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
}

func tsp(t time.Time) *time.Time { return &t }

func TestEvaluateNilRecordIsLoading(t *testing.T) {
	state := Evaluate(nil, ts(2023, 1, 10, 0))

	assert.True(t, state.IsLoading)
	assert.False(t, state.HasActiveSubscription)
	assert.False(t, state.IsInTrial)
	assert.Equal(t, 0, state.DaysLeftInTrial)
}

func TestEvaluateTrialWindow(t *testing.T) {
	record := &models.Subscription{
		ID:             "sub-1",
		TrialStartedAt: tsp(ts(2023, 1, 1, 0)),
		TrialEndsAt:    tsp(ts(2023, 1, 15, 0)),
	}

	state := Evaluate(record, ts(2023, 1, 10, 0))

	assert.True(t, state.IsInTrial)
	assert.Equal(t, 5, state.DaysLeftInTrial)
	assert.False(t, state.HasActiveSubscription)
	assert.False(t, state.IsLoading)
}

func TestEvaluateDaysLeftRoundsUpAndFloorsAtZero(t *testing.T) {
	end := ts(2023, 1, 15, 0)
	record := &models.Subscription{TrialEndsAt: &end}

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"mid window partial day rounds up", ts(2023, 1, 14, 12), 1},
		{"whole days stay exact", ts(2023, 1, 10, 0), 5},
		{"one hour left still one day", ts(2023, 1, 14, 23), 1},
		{"exactly at boundary", end, 0},
		{"after boundary never negative", ts(2023, 2, 1, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(record, tt.now).DaysLeftInTrial)
		})
	}
}

func TestEvaluateDaysLeftMonotonicallyNonIncreasing(t *testing.T) {
	end := ts(2023, 1, 15, 0)
	record := &models.Subscription{TrialEndsAt: &end}

	prev := Evaluate(record, ts(2023, 1, 1, 0)).DaysLeftInTrial
	for now := ts(2023, 1, 1, 6); now.Before(ts(2023, 1, 17, 0)); now = now.Add(6 * time.Hour) {
		cur := Evaluate(record, now).DaysLeftInTrial
		assert.LessOrEqual(t, cur, prev, "days left increased at %s", now)
		prev = cur
	}
	assert.Equal(t, 0, prev)
}

func TestEvaluateActiveSubscription(t *testing.T) {
	next := ts(2023, 6, 15, 0)

	tests := []struct {
		name   string
		record *models.Subscription
		now    time.Time
		active bool
	}{
		{
			name:   "active within paid period",
			record: &models.Subscription{Status: models.SubscriptionStatusActive, NextBillingAt: &next},
			now:    ts(2023, 6, 1, 0),
			active: true,
		},
		{
			name:   "active without billing date",
			record: &models.Subscription{Status: models.SubscriptionStatusActive},
			now:    ts(2023, 6, 1, 0),
			active: true,
		},
		{
			name:   "active past billing date is not trusted",
			record: &models.Subscription{Status: models.SubscriptionStatusActive, NextBillingAt: &next},
			now:    ts(2023, 6, 20, 0),
			active: false,
		},
		{
			name: "active past billing date with open trial",
			record: &models.Subscription{
				Status:        models.SubscriptionStatusActive,
				NextBillingAt: &next,
				TrialEndsAt:   tsp(ts(2023, 7, 1, 0)),
			},
			now:    ts(2023, 6, 20, 0),
			active: true,
		},
		{
			name:   "canceled within grace period",
			record: &models.Subscription{Status: models.SubscriptionStatusCanceled, NextBillingAt: &next},
			now:    ts(2023, 6, 10, 0),
			active: true,
		},
		{
			name:   "canceled after grace period",
			record: &models.Subscription{Status: models.SubscriptionStatusCanceled, NextBillingAt: &next},
			now:    ts(2023, 6, 16, 0),
			active: false,
		},
		{
			name:   "canceled without billing date expires immediately",
			record: &models.Subscription{Status: models.SubscriptionStatusCanceled},
			now:    ts(2023, 6, 1, 0),
			active: false,
		},
		{
			name:   "signup record with no status",
			record: &models.Subscription{Status: models.SubscriptionStatusNone},
			now:    ts(2023, 6, 1, 0),
			active: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, Evaluate(tt.record, tt.now).HasActiveSubscription)
		})
	}
}

func TestEvaluateStaleDetection(t *testing.T) {
	next := ts(2023, 6, 15, 0)

	stale := Evaluate(&models.Subscription{
		Status:        models.SubscriptionStatusActive,
		NextBillingAt: &next,
	}, ts(2023, 6, 20, 0))
	assert.True(t, stale.Stale)

	fresh := Evaluate(&models.Subscription{
		Status:        models.SubscriptionStatusActive,
		NextBillingAt: &next,
	}, ts(2023, 6, 10, 0))
	assert.False(t, fresh.Stale)

	// A canceled record past its billing date is expired, not stale.
	canceled := Evaluate(&models.Subscription{
		Status:        models.SubscriptionStatusCanceled,
		NextBillingAt: &next,
	}, ts(2023, 6, 20, 0))
	assert.False(t, canceled.Stale)
}
