package entitlements

import (
	"sync"
	"time"
)

// RedirectTask is a cancelable one-shot timer for the post-block redirect.
// The caller keeps the handle: canceling after teardown must prevent the
// navigation, and neither firing nor canceling twice may run the callback
// more than once.
type RedirectTask struct {
	timer    *time.Timer
	mu       sync.Mutex
	fired    bool
	canceled bool
}

// NewRedirectTask schedules fn to run once after delay and returns the
// handle. fn runs on the timer goroutine.
func NewRedirectTask(delay time.Duration, fn func()) *RedirectTask {
	t := &RedirectTask{}
	t.timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		if t.fired || t.canceled {
			t.mu.Unlock()
			return
		}
		t.fired = true
		t.mu.Unlock()
		fn()
	})
	return t
}

// Cancel stops the task if it has not fired yet. It is idempotent and safe
// to call concurrently with the timer firing.
func (t *RedirectTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.canceled {
		return
	}
	t.canceled = true
	t.timer.Stop()
}

// Fired reports whether the callback has run.
func (t *RedirectTask) Fired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fired
}

// Canceled reports whether the task was canceled before firing.
func (t *RedirectTask) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}
