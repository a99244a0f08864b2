package entitlements

import (
	"time"

	"github.com/ManuelReschke/TableFox/app/models"
)

// SubscriptionState is the derived access state of a tenant. It is recomputed
// on every read of the subscription record and never persisted.
type SubscriptionState struct {
	HasActiveSubscription bool   `json:"has_active_subscription"`
	IsInTrial             bool   `json:"is_in_trial"`
	DaysLeftInTrial       int    `json:"days_left_in_trial"`
	IsLoading             bool   `json:"is_loading"`
	Stale                 bool   `json:"stale"`
	Unverified            bool   `json:"unverified"`
	PlanID                uint   `json:"plan_id,omitempty"`
	SubscriptionID        string `json:"subscription_id,omitempty"`
}

// Evaluate derives the access state from a subscription record at the given
// instant. It is a pure function: the clock is injected and no I/O happens
// here, so trial boundaries are testable to the second.
//
// A canceled record keeps granting access until its next billing date is
// reached (grace period). A canceled record without a billing date, e.g. a
// cancellation during trial, counts as expired immediately.
func Evaluate(record *models.Subscription, now time.Time) SubscriptionState {
	if record == nil {
		return SubscriptionState{IsLoading: true}
	}

	state := SubscriptionState{
		PlanID:         record.PlanID,
		SubscriptionID: record.ID,
	}

	trialOpen := record.IsTrialOpen(now)
	state.IsInTrial = trialOpen
	state.DaysLeftInTrial = daysLeft(record.TrialEndsAt, now)

	switch record.Status {
	case models.SubscriptionStatusActive:
		state.HasActiveSubscription = record.NextBillingAt == nil ||
			!now.After(*record.NextBillingAt) ||
			trialOpen
	case models.SubscriptionStatusCanceled:
		state.HasActiveSubscription = record.NextBillingAt != nil &&
			!now.After(*record.NextBillingAt)
	}

	// An active record whose paid period lapsed without renewal must not be
	// trusted; callers re-fetch before acting on it.
	state.Stale = record.Status == models.SubscriptionStatusActive &&
		!trialOpen &&
		record.NextBillingAt != nil &&
		now.After(*record.NextBillingAt)

	return state
}

// daysLeft returns the number of whole days until the trial ends, rounded up
// and floored at zero. It reaches exactly zero at the trial boundary.
func daysLeft(trialEndsAt *time.Time, now time.Time) int {
	if trialEndsAt == nil {
		return 0
	}
	remaining := trialEndsAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) != 0 {
		days++
	}
	return days
}
