package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/TableFox/app/models"
	"github.com/ManuelReschke/TableFox/internal/pkg/billing"
	"github.com/ManuelReschke/TableFox/internal/pkg/cache"
	"github.com/ManuelReschke/TableFox/internal/pkg/entitlements"
	"github.com/ManuelReschke/TableFox/internal/pkg/mail"
)

const trialReminderWindow = 72 * time.Hour

// subscriptionSweeper scans the subscription table and feeds the job queue:
// reminder mails for trials about to end and state refreshes for records
// whose billing date has passed.
type subscriptionSweeper struct {
	db       *gorm.DB
	queue    *Queue
	resolver *billing.StateResolver
	now      func() time.Time
}

func newSubscriptionSweeper(db *gorm.DB, queue *Queue) *subscriptionSweeper {
	return &subscriptionSweeper{
		db:       db,
		queue:    queue,
		resolver: billing.NewStateResolverFromDB(db),
		now:      time.Now,
	}
}

// enqueueTrialReminders finds trials ending within the reminder window and
// enqueues one reminder per tenant per day. Deduplication lives in Redis so
// multiple instances do not double-mail.
func (s *subscriptionSweeper) enqueueTrialReminders() error {
	now := s.now()
	cutoff := now.Add(trialReminderWindow)

	var subs []models.Subscription
	err := s.db.Where("trial_ends_at IS NOT NULL AND trial_ends_at > ? AND trial_ends_at <= ?", now, cutoff).
		Find(&subs).Error
	if err != nil {
		return fmt.Errorf("trial reminder query failed: %w", err)
	}

	ctx := context.Background()
	for _, sub := range subs {
		state := entitlements.Evaluate(&sub, now)
		if !state.IsInTrial || state.DaysLeftInTrial <= 0 {
			continue
		}

		dedupKey := fmt.Sprintf("trial_reminder_sent:%d:%s", sub.TenantID, now.Format("2006-01-02"))
		set, err := cache.GetClient().SetNX(ctx, dedupKey, "1", 48*time.Hour).Result()
		if err != nil {
			log.Warnf("[JobQueue] Trial reminder dedup check failed for tenant %d: %v", sub.TenantID, err)
			continue
		}
		if !set {
			continue
		}

		var tenant models.Tenant
		if err := s.db.First(&tenant, sub.TenantID).Error; err != nil {
			log.Warnf("[JobQueue] Tenant %d not found for trial reminder: %v", sub.TenantID, err)
			continue
		}

		payload := TrialReminderJobPayload{
			TenantID:   tenant.ID,
			TenantName: tenant.Name,
			Email:      tenant.Email,
			DaysLeft:   state.DaysLeftInTrial,
		}
		if _, err := s.queue.EnqueueJob(JobTypeTrialReminder, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue] Failed to enqueue trial reminder for tenant %d: %v", tenant.ID, err)
		}
	}

	return nil
}

// enqueueStaleRefreshes picks active subscriptions whose billing date lies in
// the past and schedules a state refresh for each. The refresh re-reads the
// record and updates the cached state, so lapsed access converges even for
// tenants who never open the app.
func (s *subscriptionSweeper) enqueueStaleRefreshes() error {
	now := s.now()

	var subs []models.Subscription
	err := s.db.Where("status = ? AND next_billing_at IS NOT NULL AND next_billing_at < ?", models.SubscriptionStatusActive, now).
		Find(&subs).Error
	if err != nil {
		return fmt.Errorf("stale subscription query failed: %w", err)
	}

	for _, sub := range subs {
		payload := StateRefreshJobPayload{TenantID: sub.TenantID}
		if _, err := s.queue.EnqueueJob(JobTypeStateRefresh, payload.ToMap()); err != nil {
			log.Errorf("[JobQueue] Failed to enqueue state refresh for tenant %d: %v", sub.TenantID, err)
		}
	}

	return nil
}

// processTrialReminderJob sends the reminder mail for one tenant.
func (s *subscriptionSweeper) processTrialReminderJob(_ context.Context, job *Job) error {
	payload, err := TrialReminderJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid trial reminder payload: %w", err)
	}

	return mail.SendTrialExpiryWarning(payload.Email, payload.TenantName, payload.DaysLeft)
}

// processStateRefreshJob re-evaluates one tenant's subscription state.
func (s *subscriptionSweeper) processStateRefreshJob(ctx context.Context, job *Job) error {
	payload, err := StateRefreshJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid state refresh payload: %w", err)
	}

	state := s.resolver.Resolve(ctx, payload.TenantID)
	if state.Unverified {
		return fmt.Errorf("state refresh for tenant %d could not be verified", payload.TenantID)
	}
	return nil
}
