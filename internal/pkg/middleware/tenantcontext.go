package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/TableFox/internal/pkg/billing"
	"github.com/ManuelReschke/TableFox/internal/pkg/database"
	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/TableFox/internal/pkg/session"
	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
)

// TenantContextMiddleware sets up the complete tenant context for every
// request: session lookup plus a fresh subscription state evaluation. This
// centralizes tenant session handling; nothing downstream touches the
// session or the record store directly.
func TenantContextMiddleware(c *fiber.Ctx) error {
	// Avoid interfering with Goth/Fiber session handling on OAuth routes.
	// Goth uses its own fiber session store and relies on per-request locals.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		// On error: treat as anonymous
		c.Locals("TENANT_CONTEXT", tenantcontext.TenantContext{
			IsLoggedIn: false,
			State:      entitlements.SubscriptionState{IsLoading: true},
		})
		c.Locals(tenantcontext.KeyFromProtected, false)
		return c.Next()
	}

	tenantID := sess.Get(tenantcontext.KeyTenantID)
	if tenantID == nil {
		// Anonymous - no session data
		c.Locals("TENANT_CONTEXT", tenantcontext.TenantContext{
			IsLoggedIn: false,
			State:      entitlements.SubscriptionState{IsLoading: true},
		})
		c.Locals(tenantcontext.KeyFromProtected, false)
		return c.Next()
	}

	name := session.GetSessionValue(c, tenantcontext.KeyTenantName)

	// Subscription state is re-evaluated on every request; the resolver
	// handles storage failures with its last-known-state fallback.
	state := GetStateResolver().Resolve(c.Context(), tenantID.(uint))

	c.Locals("TENANT_CONTEXT", tenantcontext.TenantContext{
		TenantID:   tenantID.(uint),
		Name:       name,
		IsLoggedIn: true,
		State:      state,
	})
	c.Locals(tenantcontext.KeyFromProtected, true)
	c.Locals(tenantcontext.KeyTenantID, tenantID.(uint))
	c.Locals(tenantcontext.KeyTenantName, name)

	return c.Next()
}

var stateResolver *billing.StateResolver

// GetStateResolver returns the shared state resolver, creating it on first
// use from the default DB and cache.
func GetStateResolver() *billing.StateResolver {
	if stateResolver == nil {
		stateResolver = billing.NewStateResolverFromDB(database.GetDB())
	}
	return stateResolver
}

// SetStateResolver replaces the shared resolver. Tests use this.
func SetStateResolver(r *billing.StateResolver) {
	stateResolver = r
}
