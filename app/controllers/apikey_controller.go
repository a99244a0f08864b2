package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/TableFox/app/repository"
	"github.com/ManuelReschke/TableFox/internal/pkg/tenantcontext"
)

// HandleAPIKeyIssue generates a fresh POS API key for the tenant. The raw
// secret is shown exactly once; only its hash is stored.
func HandleAPIKeyIssue(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByID(tenantID)
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Konto konnte nicht geladen werden.",
		}).Redirect("/account")
	}

	rawKey, err := tenant.IssueAPIKey()
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "API-Schlüssel konnte nicht erstellt werden.",
		}).Redirect("/account")
	}

	if err := repo.Update(tenant); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "API-Schlüssel konnte nicht gespeichert werden.",
		}).Redirect("/account")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Neuer API-Schlüssel: " + rawKey + " – notiere ihn jetzt, er wird nicht erneut angezeigt.",
	}).Redirect("/account")
}

// HandleAPIKeyRevoke invalidates the tenant's POS API key.
func HandleAPIKeyRevoke(c *fiber.Ctx) error {
	tenantID := tenantcontext.GetTenantID(c)

	repo := repository.GetGlobalFactory().GetTenantRepository()
	tenant, err := repo.GetByID(tenantID)
	if err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Konto konnte nicht geladen werden.",
		}).Redirect("/account")
	}

	tenant.RevokeAPIKey()
	if err := repo.Update(tenant); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "API-Schlüssel konnte nicht widerrufen werden.",
		}).Redirect("/account")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "API-Schlüssel widerrufen. POS-Geräte müssen neu verbunden werden.",
	}).Redirect("/account")
}
