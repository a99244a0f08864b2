package router

import (
	"strings"
	"time"

	"github.com/ManuelReschke/TableFox/app/controllers"
	"github.com/ManuelReschke/TableFox/internal/pkg/env"
	"github.com/ManuelReschke/TableFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/login", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Get("/register", loggedInMiddleware, controllers.HandleAuthRegister)
	group.Post("/register", loggedInMiddleware, controllers.HandleAuthRegister)

	// Plans stay reachable while blocked; this is where the post-block
	// redirect lands.
	group.Get("/plans", middleware.RequireAuth, controllers.HandlePlans)
	group.Post("/plans/subscribe", middleware.RequireAuth, controllers.HandleSubscribe)

	// Everything behind the subscription gate.
	group.Get("/dashboard", middleware.RequireAuth, middleware.RequireSubscription, controllers.HandleDashboard)
	group.Get("/account", middleware.RequireAuth, controllers.HandleAccount)
	group.Post("/account/cancel", middleware.RequireAuth, controllers.HandleCancelSubscription)
	group.Post("/account/reactivate", middleware.RequireAuth, controllers.HandleReactivateSubscription)
	group.Get("/account/payments", middleware.RequireAuth, controllers.HandlePayments)
	group.Post("/account/api-key", middleware.RequireAuth, controllers.HandleAPIKeyIssue)
	group.Post("/account/api-key/revoke", middleware.RequireAuth, controllers.HandleAPIKeyRevoke)
}
