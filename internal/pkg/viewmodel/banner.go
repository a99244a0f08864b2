package viewmodel

import (
	"fmt"

	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
)

// TrialBanner is the countdown banner shown while a tenant is in trial.
type TrialBanner struct {
	Visible bool
	Urgent  bool
	Text    string
}

// NewTrialBanner derives the banner from the resolved subscription state.
// Hidden while loading or outside a trial; urgent styling kicks in at three
// days or less, matching the gate's warn threshold.
func NewTrialBanner(state entitlements.SubscriptionState) TrialBanner {
	if state.IsLoading || !state.IsInTrial || state.DaysLeftInTrial <= 0 {
		return TrialBanner{}
	}

	text := fmt.Sprintf("Noch %d Tage Testphase", state.DaysLeftInTrial)
	if state.DaysLeftInTrial == 1 {
		text = "Letzter Tag deiner Testphase"
	}

	return TrialBanner{
		Visible: true,
		Urgent:  state.DaysLeftInTrial <= 3,
		Text:    text,
	}
}
