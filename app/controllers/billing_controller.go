package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/TableFox/app/repository"
	"github.com/ManuelReschke/TableFox/internal/pkg/billing"
	"github.com/ManuelReschke/TableFox/internal/pkg/mail"
	"github.com/ManuelReschke/TableFox/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/TableFox/internal/pkg/middleware"
	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
	"github.com/ManuelReschke/TableFox/internal/pkg/viewmodel"
)

// HandlePlans renders the plan selection page. This page stays reachable for
// blocked tenants; it is where the post-block redirect lands.
func HandlePlans(c *fiber.Ctx) error {
	plans, err := repository.GetGlobalFactory().GetPlanRepository().ListActive()
	if err != nil {
		flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Die Tarife konnten nicht geladen werden.",
		})
	}

	state := tenantcontext.GetState(c)
	vm := viewmodel.NewLayout(c).WithPage(" | Tarife")
	return c.Render("billing/plans", fiber.Map{
		"Page":           vm,
		"Plans":          plans,
		"Csrf":           csrfToken(c),
		"HasActive":      state.HasActiveSubscription,
		"SubscriptionID": state.SubscriptionID,
		"PlanID":         state.PlanID,
	})
}

// HandleSubscribe creates or replaces the tenant's subscription from the
// plan form. A declined card leaves everything untouched.
func HandleSubscribe(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)

	in := billing.SubscribeInput{
		PlanCode:        strings.ToLower(strings.TrimSpace(c.FormValue("plan_code"))),
		BillingInterval: c.FormValue("billing_interval"),
		PaymentMethod:   c.FormValue("payment_method"),
	}

	if _, err := billingService().Subscribe(c.Context(), tenantID, in); err != nil {
		_ = counter.AddLifecycleOp("subscribe_failed")
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": billingErrorMessage(err),
		}).Redirect("/plans")
	}

	_ = counter.AddLifecycleOp("subscribe_ok")

	plan, _ := repository.GetGlobalFactory().GetPlanRepository().GetByCode(in.PlanCode)
	planName := planDisplayName(plan, in.PlanCode)

	// The next gate check must see the new record, and an applied lockout
	// must not survive a successful checkout.
	middleware.GetStateResolver().Invalidate(c.Context(), tenantID)
	middleware.ClearLockout(c.Context(), tenantID)
	middleware.CancelPendingLockout(c)

	if tenant, terr := repository.GetGlobalFactory().GetTenantRepository().GetByID(tenantID); terr == nil {
		go func(to, name, plan string) {
			_ = mail.SendSubscriptionConfirmation(to, name, plan)
		}(tenant.Email, tenant.Name, planName)
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": subscribeSuccessMessage(planName),
	}).Redirect("/")
}

// HandleCancelSubscription cancels the current subscription. Access stays
// open until the already paid period ends.
func HandleCancelSubscription(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	subscriptionID := c.FormValue("subscription_id")

	sub, err := billingService().Cancel(c.Context(), tenantID, subscriptionID)
	if err != nil {
		_ = counter.AddLifecycleOp("cancel_failed")
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": billingErrorMessage(err),
		}).Redirect("/account")
	}

	_ = counter.AddLifecycleOp("cancel_ok")
	middleware.GetStateResolver().Invalidate(c.Context(), tenantID)

	accessUntil := "heute"
	msg := "Dein Abo wurde gekündigt."
	if sub.NextBillingAt != nil {
		accessUntil = sub.NextBillingAt.Format("02.01.2006")
		msg = "Dein Abo wurde gekündigt. Du kannst TableFox noch bis zum " + accessUntil + " nutzen."
	}

	if tenant, terr := repository.GetGlobalFactory().GetTenantRepository().GetByID(tenantID); terr == nil {
		go func(to, name, until string) {
			_ = mail.SendCancellationConfirmation(to, name, until)
		}(tenant.Email, tenant.Name, accessUntil)
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": msg,
	}).Redirect("/account")
}

// HandleReactivateSubscription undoes a cancellation before the paid period
// has run out.
func HandleReactivateSubscription(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)
	subscriptionID := c.FormValue("subscription_id")

	if _, err := billingService().Reactivate(c.Context(), tenantID, subscriptionID); err != nil {
		_ = counter.AddLifecycleOp("reactivate_failed")
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": billingErrorMessage(err),
		}).Redirect("/account")
	}

	_ = counter.AddLifecycleOp("reactivate_ok")
	middleware.GetStateResolver().Invalidate(c.Context(), tenantID)
	middleware.ClearLockout(c.Context(), tenantID)
	middleware.CancelPendingLockout(c)

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Willkommen zurück! Dein Abo läuft weiter.",
	}).Redirect("/account")
}

// HandlePayments lists the tenant's payment history, newest first.
func HandlePayments(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)

	events, err := billingService().PaymentHistory(c.Context(), tenantID)
	if err != nil {
		flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Der Zahlungsverlauf konnte nicht geladen werden.",
		})
	}

	vm := viewmodel.NewLayout(c).WithPage(" | Zahlungen")
	return c.Render("billing/payments", fiber.Map{
		"Page":   vm,
		"Events": events,
	})
}

// HandleAccount shows the subscription overview with cancel/reactivate
// actions.
func HandleAccount(c *fiber.Ctx) error {
	state := tenantcontext.GetState(c)

	vm := viewmodel.NewLayout(c).WithPage(" | Konto")
	return c.Render("billing/account", fiber.Map{
		"Page":  vm,
		"State": state,
		"Csrf":  csrfToken(c),
	})
}
