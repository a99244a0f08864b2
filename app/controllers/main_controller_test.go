package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartTestApp(loggedIn bool) *fiber.App {
	app := fiber.New(fiber.Config{
		Views: html.New("../../views", ".html"),
	})
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(FROM_PROTECTED, loggedIn)
		return c.Next()
	}, HandleStart)
	return app
}

// Logged-in tenants must land on /dashboard, the route that carries the
// subscription gate. Serving the dashboard from / directly would let a
// blocked tenant keep working by changing the URL.
func TestStartRedirectsLoggedInTenantsToGatedDashboard(t *testing.T) {
	app := newStartTestApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestStartRendersLandingPageForVisitors(t *testing.T) {
	app := newStartTestApp(false)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
