package router

import (
	"github.com/ManuelReschke/TableFox/app/controllers"
	"github.com/ManuelReschke/TableFox/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)

	// Social OAuth
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Get("/auth/:provider/callback", controllers.HandleOAuthCallback)
}
