package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideBlocksOnlyWithoutTrialAndSubscription(t *testing.T) {
	tests := []struct {
		name  string
		state SubscriptionState
		want  Action
	}{
		{
			name:  "nothing at all",
			state: SubscriptionState{},
			want:  ActionBlock,
		},
		{
			name:  "trial exhausted",
			state: SubscriptionState{IsInTrial: true, DaysLeftInTrial: 0},
			want:  ActionBlock,
		},
		{
			name:  "mid trial is never blocked",
			state: SubscriptionState{IsInTrial: true, DaysLeftInTrial: 5},
			want:  ActionAllow,
		},
		{
			name:  "active subscription",
			state: SubscriptionState{HasActiveSubscription: true},
			want:  ActionAllow,
		},
		{
			name:  "loading never restricts",
			state: SubscriptionState{IsLoading: true},
			want:  ActionAllow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state).Action)
		})
	}
}

func TestDecideBlockCarriesRedirectDelay(t *testing.T) {
	d := Decide(SubscriptionState{})

	assert.Equal(t, ActionBlock, d.Action)
	assert.Equal(t, 3000, d.RedirectDelayMs)
}

func TestDecideWarnsOnUrgentTrial(t *testing.T) {
	for days := 1; days <= 3; days++ {
		d := Decide(SubscriptionState{IsInTrial: true, DaysLeftInTrial: days})
		assert.Equal(t, ActionWarn, d.Action, "days=%d", days)
		assert.True(t, d.Urgent)
	}

	// More than three days left is plain allow; the neutral banner is a
	// view concern, not a gate action.
	d := Decide(SubscriptionState{IsInTrial: true, DaysLeftInTrial: 4})
	assert.Equal(t, ActionAllow, d.Action)
}

func TestDecideBlockedStateNeverAlsoWarns(t *testing.T) {
	// Trial flagged but exhausted: blocked, not warned.
	d := Decide(SubscriptionState{IsInTrial: true, DaysLeftInTrial: 0})
	assert.Equal(t, ActionBlock, d.Action)
	assert.False(t, d.Urgent)
}

func TestDecideTrialNeverBlockedEvenWithoutSubscription(t *testing.T) {
	for days := 1; days <= 14; days++ {
		d := Decide(SubscriptionState{
			HasActiveSubscription: false,
			IsInTrial:             true,
			DaysLeftInTrial:       days,
		})
		assert.NotEqual(t, ActionBlock, d.Action, "days=%d", days)
	}
}
