package entitlements

// Action is the access gate's verdict for a request.
type Action string

const (
	ActionAllow Action = "allow"
	ActionWarn  Action = "warn"
	ActionBlock Action = "block"
)

// BlockRedirectDelayMs is how long the blocked page stays visible before the
// tenant is navigated to the plans surface.
const BlockRedirectDelayMs = 3000

// Decision is what the gate tells its consumers to do. The side effects
// (redirect, banner) are owned by the callers, not by this package.
type Decision struct {
	Action          Action `json:"action"`
	RedirectDelayMs int    `json:"redirect_delay_ms,omitempty"`
	Urgent          bool   `json:"urgent,omitempty"`
}

// Decide converts a subscription state into an access decision.
//
// Blocking requires all three at once: no active subscription, and the trial
// either absent or exhausted, on a definitive (non-loading) state. A tenant
// mid-trial is never blocked, no matter what the paid subscription looks
// like. A loading state never restricts access; evaluation waits for a
// definitive read to avoid false positives during the initial fetch.
func Decide(state SubscriptionState) Decision {
	if !state.IsLoading &&
		!state.HasActiveSubscription &&
		(!state.IsInTrial || state.DaysLeftInTrial <= 0) {
		return Decision{Action: ActionBlock, RedirectDelayMs: BlockRedirectDelayMs}
	}

	if state.IsInTrial && state.DaysLeftInTrial <= 3 {
		return Decision{Action: ActionWarn, Urgent: true}
	}

	return Decision{Action: ActionAllow}
}
