package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
)

func TestNewTrialBanner(t *testing.T) {
	tests := []struct {
		name    string
		state   entitlements.SubscriptionState
		visible bool
		urgent  bool
		text    string
	}{
		{
			name:  "hidden while loading",
			state: entitlements.SubscriptionState{IsLoading: true, IsInTrial: true, DaysLeftInTrial: 5},
		},
		{
			name:  "hidden without trial",
			state: entitlements.SubscriptionState{HasActiveSubscription: true},
		},
		{
			name:    "neutral countdown above threshold",
			state:   entitlements.SubscriptionState{IsInTrial: true, DaysLeftInTrial: 7},
			visible: true,
			text:    "Noch 7 Tage Testphase",
		},
		{
			name:    "urgent at three days",
			state:   entitlements.SubscriptionState{IsInTrial: true, DaysLeftInTrial: 3},
			visible: true,
			urgent:  true,
			text:    "Noch 3 Tage Testphase",
		},
		{
			name:    "last day wording",
			state:   entitlements.SubscriptionState{IsInTrial: true, DaysLeftInTrial: 1},
			visible: true,
			urgent:  true,
			text:    "Letzter Tag deiner Testphase",
		},
		{
			name:  "hidden when trial exhausted",
			state: entitlements.SubscriptionState{IsInTrial: true, DaysLeftInTrial: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewTrialBanner(tt.state)
			assert.Equal(t, tt.visible, b.Visible)
			assert.Equal(t, tt.urgent, b.Urgent)
			if tt.text != "" {
				assert.Equal(t, tt.text, b.Text)
			}
		})
	}
}
