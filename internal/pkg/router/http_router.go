package router

import (
	"github.com/ManuelReschke/TableFox/internal/pkg/middleware"
	"github.com/ManuelReschke/TableFox/internal/pkg/oauth"
	"github.com/ManuelReschke/TableFox/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply TenantContext middleware globally as first middleware
	app.Use(middleware.TenantContextMiddleware)

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// TenantContextMiddleware already set all tenant context
	// All tenant information is available via tenantcontext.GetTenantContext(c)
	return c.Next()
}
