package viewmodel

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
)

// Layout carries everything the base template needs on every page.
type Layout struct {
	Page          string
	FromProtected bool
	IsError       bool
	Msg           fiber.Map
	TenantName    string
	Banner        TrialBanner
}

// NewLayout builds the layout view model from the request context: login
// state, flash message and the trial banner derived from the subscription
// state the middleware resolved.
func NewLayout(c *fiber.Ctx) Layout {
	tc := tenantcontext.GetTenantContext(c)
	return Layout{
		FromProtected: tc.IsLoggedIn,
		Msg:           flash.Get(c),
		TenantName:    tc.Name,
		Banner:        NewTrialBanner(tc.State),
	}
}

// WithPage sets the page title suffix.
func (l Layout) WithPage(page string) Layout {
	l.Page = page
	return l
}
