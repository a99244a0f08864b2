package tenantcontext

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
)

// TenantContext represents the complete tenant context for a request
type TenantContext struct {
	TenantID   uint                           `json:"tenant_id"`
	Name       string                         `json:"name"`
	IsLoggedIn bool                           `json:"is_logged_in"`
	State      entitlements.SubscriptionState `json:"state"`
}

// GetTenantContext retrieves the tenant context from fiber context
// Returns a default anonymous context if none is set
func GetTenantContext(c *fiber.Ctx) TenantContext {
	if ctx := c.Locals("TENANT_CONTEXT"); ctx != nil {
		return ctx.(TenantContext)
	}
	return TenantContext{IsLoggedIn: false, State: entitlements.SubscriptionState{IsLoading: true}}
}

// IsLoggedIn checks if the current tenant is logged in
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetTenantContext(c).IsLoggedIn
}

// GetTenantID returns the current tenant's ID, or 0 if not logged in
func GetTenantID(c *fiber.Ctx) uint {
	return GetTenantContext(c).TenantID
}

// GetName returns the current tenant's restaurant name, or empty string if not logged in
func GetName(c *fiber.Ctx) string {
	return GetTenantContext(c).Name
}

// GetState returns the resolved subscription state for the current tenant.
func GetState(c *fiber.Ctx) entitlements.SubscriptionState {
	return GetTenantContext(c).State
}
