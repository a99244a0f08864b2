package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
)

// Pong is the ping response body
type Pong struct {
	Ping string `json:"ping"`
}

// SubscriptionResponse is the JSON shape of GET /api/v1/subscription
type SubscriptionResponse struct {
	State    entitlements.SubscriptionState `json:"state"`
	Decision entitlements.Decision          `json:"decision"`
}

// ServerInterface lists the operations of the public v1 API, mirroring
// public/docs/v1/openapi.yml.
type ServerInterface interface {
	GetPing(c *fiber.Ctx) error
	GetSubscription(c *fiber.Ctx) error
	GetEntitlement(c *fiber.Ctx) error
}

// APIServer implements the ServerInterface
type APIServer struct{}

// NewAPIServer creates a new API server instance
func NewAPIServer() *APIServer {
	return &APIServer{}
}

// GetPing handles the ping endpoint
func (s *APIServer) GetPing(c *fiber.Ctx) error {
	response := Pong{
		Ping: "pong",
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// GetSubscription returns the evaluated subscription state for the
// authenticated tenant (API key). Security is enforced via API key
// middleware attached in the router.
func (s *APIServer) GetSubscription(c *fiber.Ctx) error {
	state := tenantcontext.GetState(c)

	return c.Status(fiber.StatusOK).JSON(SubscriptionResponse{
		State:    state,
		Decision: entitlements.Decide(state),
	})
}

// GetEntitlement is the cheap polling endpoint for POS devices: just the
// access verdict, no state details.
func (s *APIServer) GetEntitlement(c *fiber.Ctx) error {
	state := tenantcontext.GetState(c)
	decision := entitlements.Decide(state)

	status := fiber.StatusOK
	if decision.Action == entitlements.ActionBlock {
		status = fiber.StatusPaymentRequired
	}

	return c.Status(status).JSON(decision)
}

// RegisterHandlers wires the v1 operations onto the given router group.
// apiKeyAuth protects every operation except ping.
func RegisterHandlers(router fiber.Router, si ServerInterface, apiKeyAuth fiber.Handler) {
	router.Get("/ping", si.GetPing)
	router.Get("/subscription", apiKeyAuth, si.GetSubscription)
	router.Get("/entitlement", apiKeyAuth, si.GetEntitlement)
}
