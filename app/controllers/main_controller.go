package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
	"github.com/ManuelReschke/TableFox/internal/pkg/viewmodel"
)

// HandleStart renders the landing page for visitors. Logged-in restaurants
// are sent to /dashboard, which carries the subscription gate; rendering the
// dashboard here directly would sidestep it.
func HandleStart(c *fiber.Ctx) error {
	if isLoggedIn(c) {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	vm := viewmodel.NewLayout(c)
	return c.Render("index", fiber.Map{
		"Page": vm,
	})
}

// HandleDashboard is the main POS screen: tables, open orders and the trial
// banner. It sits behind the subscription gate.
func HandleDashboard(c *fiber.Ctx) error {
	tc := tenantcontext.GetTenantContext(c)

	vm := viewmodel.NewLayout(c).WithPage(" | Dashboard")
	return c.Render("dashboard", fiber.Map{
		"Page":       vm,
		"TenantName": tc.Name,
		"State":      tc.State,
	})
}
