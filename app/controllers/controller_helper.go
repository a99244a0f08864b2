package controllers

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/TableFox/app/models"
	"github.com/ManuelReschke/TableFox/internal/pkg/billing"
	"github.com/ManuelReschke/TableFox/internal/pkg/database"
)

func isLoggedIn(c *fiber.Ctx) bool {
	var fromProtected bool
	if protectedValue := c.Locals(FROM_PROTECTED); protectedValue != nil {
		fromProtected = protectedValue.(bool)
	}

	return fromProtected
}

// csrfToken reads the token the CSRF middleware stored in Locals.
func csrfToken(c *fiber.Ctx) string {
	if v := c.Locals("csrf"); v != nil {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}

var (
	billingSvc     *billing.Service
	billingSvcOnce sync.Once
)

// billingService returns the shared subscription lifecycle service.
func billingService() *billing.Service {
	billingSvcOnce.Do(func() {
		billingSvc = billing.NewServiceFromDB(database.GetDB())
	})
	return billingSvc
}

// SetBillingService replaces the shared service. Tests use this.
func SetBillingService(s *billing.Service) {
	billingSvcOnce.Do(func() {})
	billingSvc = s
}

// planDisplayName returns the plan's human-readable name, falling back to
// the code when the lookup came back empty.
func planDisplayName(plan *models.Plan, fallback string) string {
	if plan != nil && plan.Name != "" {
		return plan.Name
	}
	return fallback
}

func subscribeSuccessMessage(planName string) string {
	return "Dein Abo für den Tarif \"" + planName + "\" ist aktiv. Guten Service!"
}

// billingErrorMessage maps a lifecycle error to the flash message shown to
// the tenant. Unknown errors get a generic text so internals never leak.
func billingErrorMessage(err error) string {
	var validationErr *billing.ValidationError
	switch {
	case errors.Is(err, billing.ErrPaymentDeclined):
		return "Deine Zahlung wurde abgelehnt. Bitte prüfe deine Zahlungsdaten und versuche es erneut."
	case errors.Is(err, billing.ErrOperationInProgress):
		return "Für dein Konto läuft gerade eine andere Abo-Änderung. Bitte versuche es gleich noch einmal."
	case errors.Is(err, billing.ErrNotFound):
		return "Es wurde kein Abo gefunden."
	case errors.Is(err, billing.ErrInvalidState):
		return "Diese Aktion ist für dein Abo gerade nicht möglich."
	case errors.As(err, &validationErr):
		return "Die Eingaben sind unvollständig oder ungültig: " + validationErr.Error()
	case errors.As(err, new(*billing.GatewayError)):
		return "Der Zahlungsanbieter ist gerade nicht erreichbar. Dein Abo wurde nicht verändert."
	default:
		return "Da ist etwas schiefgelaufen. Bitte versuche es später erneut."
	}
}
