package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/ManuelReschke/TableFox/app/models"
	"github.com/ManuelReschke/TableFox/internal/pkg/database"
	"github.com/ManuelReschke/TableFox/internal/pkg/session"
)

// HandleOAuthCallback completes the provider flow and logs the tenant in.
// First-time sign-ins create the restaurant account and start its trial.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("OAuth failed: %v", err))
	}

	db := database.GetDB()

	// Try to find existing provider account
	var pa models.ProviderAccount
	res := db.Where("provider = ? AND provider_user_id = ?", u.Provider, u.UserID).First(&pa)

	var tenant models.Tenant
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		// Optional email match if provided
		if u.Email != "" {
			_ = db.Where("email = ?", u.Email).First(&tenant).Error
		}
		isNew := tenant.ID == 0
		if isNew {
			// Password is a random placeholder; OAuth tenants never log in with it
			placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
			hash, _ := models.HashPassword(placeholder)
			email := u.Email
			if email == "" {
				// Ensure unique, non-empty email to satisfy unique index semantics in MySQL
				email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
			}
			tenant = models.Tenant{
				Name:     firstNonEmpty(u.Name, u.NickName, u.Email, "Restaurant"),
				Email:    email,
				Password: hash,
				Status:   models.STATUS_ACTIVE,
			}
			if err := db.Create(&tenant).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("create tenant failed: %v", err))
			}
		}
		var exp *time.Time
		if !u.ExpiresAt.IsZero() {
			t := u.ExpiresAt
			exp = &t
		}
		pa = models.ProviderAccount{
			TenantID:       tenant.ID,
			Provider:       u.Provider,
			ProviderUserID: u.UserID,
			AccessToken:    u.AccessToken,
			RefreshToken:   u.RefreshToken,
			ExpiresAt:      exp,
		}
		if err := db.Create(&pa).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("link provider failed: %v", err))
		}
		if isNew {
			if _, err := billingService().StartTrial(c.Context(), tenant.ID); err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("trial start failed: %v", err))
			}
		}
	} else if res.Error == nil {
		// Update tokens
		pa.AccessToken = u.AccessToken
		pa.RefreshToken = u.RefreshToken
		if !u.ExpiresAt.IsZero() {
			t := u.ExpiresAt
			pa.ExpiresAt = &t
		} else {
			pa.ExpiresAt = nil
		}
		if err := db.Save(&pa).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("update tokens failed: %v", err))
		}
		// Load related tenant
		if err := db.First(&tenant, pa.TenantID).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("linked tenant not found")
		}
	} else {
		return c.Status(fiber.StatusInternalServerError).SendString(fmt.Sprintf("db error: %v", res.Error))
	}

	// Create app session
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session init failed")
	}
	sess.Set(AUTH_KEY, true)
	sess.Set(TENANT_ID, tenant.ID)
	sess.Set(TENANT_NAME, tenant.Name)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("session save failed")
	}

	_ = db.Model(&tenant).UpdateColumn("last_login_at", time.Now()).Error

	// Ensure HTMX boosted flows perform a full redirect and refresh head/meta
	c.Set("HX-Redirect", "/")
	return c.Redirect("/", fiber.StatusSeeOther)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
