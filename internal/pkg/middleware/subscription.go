package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/TableFox/internal/pkg/cache"
	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/TableFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/TableFox/internal/pkg/session"
	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
	"github.com/ManuelReschke/TableFox/internal/pkg/viewmodel"
)

const lockoutTTL = 30 * time.Minute

// pendingRedirects keys session ID to the scheduled post-block redirect task.
// A tenant who signs out or completes checkout before the delay elapses must
// not be locked out afterwards, so the handle stays cancelable per session.
var pendingRedirects sync.Map

func lockoutKey(tenantID uint) string {
	return fmt.Sprintf("lockout:%d", tenantID)
}

// RequireSubscription gates protected routes on the tenant's subscription
// state. Allowed and warned requests pass through (warnings surface as a
// banner via the view model); blocked tenants see the blocked page once and
// are then held on the plans surface until their access is restored.
func RequireSubscription(c *fiber.Ctx) error {
	tc := tenantcontext.GetTenantContext(c)
	state := tc.State

	decision := entitlements.Decide(state)
	if err := counter.AddGateDecision(string(decision.Action)); err != nil {
		log.Warnf("gate decision counter failed: %v", err)
	}

	if state.Unverified {
		// Storage and cache both unavailable: no silent grant or block,
		// the tenant keeps working and sees that verification failed.
		flash.WithInfo(c, fiber.Map{
			"message": "Dein Abo-Status konnte gerade nicht geprüft werden. Wir versuchen es automatisch erneut.",
		})
		return c.Next()
	}

	if decision.Action != entitlements.ActionBlock {
		return c.Next()
	}

	if err := counter.AddTenantBlock(tc.TenantID); err != nil {
		log.Warnf("tenant block counter failed: %v", err)
	}

	// Once the redirect has fired the tenant is held on the plans page
	// without re-showing the interstitial.
	if locked, err := cache.GetClient().Exists(c.Context(), lockoutKey(tc.TenantID)).Result(); err == nil && locked > 0 {
		return c.Redirect("/plans", fiber.StatusSeeOther)
	}

	scheduleLockout(c, tc.TenantID)

	vm := viewmodel.NewLayout(c)
	return c.Status(fiber.StatusPaymentRequired).Render("blocked", fiber.Map{
		"Page":            vm,
		"RedirectDelayMs": decision.RedirectDelayMs,
		"RedirectTarget":  "/plans",
	})
}

// scheduleLockout arms the one-shot redirect task for this session. An
// already pending task for the same session is kept; re-rendering the
// blocked page must not reset the countdown.
func scheduleLockout(c *fiber.Ctx, tenantID uint) {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		log.Warnf("cannot schedule lockout without session: %v", err)
		return
	}
	sid := sess.ID()

	delay := time.Duration(entitlements.BlockRedirectDelayMs) * time.Millisecond
	task := entitlements.NewRedirectTask(delay, func() {
		pendingRedirects.Delete(sid)
		if err := cache.GetClient().Set(context.Background(), lockoutKey(tenantID), "1", lockoutTTL).Err(); err != nil {
			log.Errorf("failed to set lockout for tenant %d: %v", tenantID, err)
		}
	})

	if _, loaded := pendingRedirects.LoadOrStore(sid, task); loaded {
		task.Cancel()
	}
}

// CancelPendingLockout stops the scheduled redirect for a session, if any.
// Called on logout and whenever a lifecycle operation restores access.
func CancelPendingLockout(c *fiber.Ctx) {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return
	}
	if v, ok := pendingRedirects.LoadAndDelete(sess.ID()); ok {
		v.(*entitlements.RedirectTask).Cancel()
	}
}

// ClearLockout lifts an already applied lockout for a tenant after a
// successful subscribe or reactivate.
func ClearLockout(ctx context.Context, tenantID uint) {
	if err := cache.GetClient().Del(ctx, lockoutKey(tenantID)).Err(); err != nil {
		log.Warnf("failed to clear lockout for tenant %d: %v", tenantID, err)
	}
}
