package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ManuelReschke/TableFox/app/models"
	"github.com/ManuelReschke/TableFox/internal/pkg/env"
)

const defaultTrialDays = 14

// Service is the subscription lifecycle controller. All mutations of a
// tenant's subscription record go through here and are serialized per
// tenant: a second operation while one is in flight fails fast with
// ErrOperationInProgress instead of racing.
type Service struct {
	repo      Repository
	gateway   PaymentGateway
	validate  *validator.Validate
	now       func() time.Time
	trialDays int
	locks     sync.Map // tenantID -> *sync.Mutex
}

// NewService creates a lifecycle service from injected collaborators.
func NewService(repo Repository, gateway PaymentGateway) *Service {
	trialDays := defaultTrialDays
	if v, err := strconv.Atoi(env.GetEnv("TRIAL_DAYS", "")); err == nil && v > 0 {
		trialDays = v
	}
	return &Service{
		repo:      repo,
		gateway:   gateway,
		validate:  validator.New(),
		now:       time.Now,
		trialDays: trialDays,
	}
}

// NewServiceFromDB creates a lifecycle service from a GORM DB handle with
// the environment-configured gateway.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), NewGatewayFromEnv())
}

// WithClock replaces the service clock. Tests use this to pin time.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// StartTrial creates the signup record for a tenant that has never
// subscribed: no status, trial window starting now.
func (s *Service) StartTrial(ctx context.Context, tenantID uint) (*models.Subscription, error) {
	unlock, err := s.acquire(tenantID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	_ = ctx

	now := s.now()
	ends := now.Add(time.Duration(s.trialDays) * 24 * time.Hour)
	sub := &models.Subscription{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		Status:         models.SubscriptionStatusNone,
		TrialStartedAt: &now,
		TrialEndsAt:    &ends,
	}
	if err := s.repo.ReplaceCurrent(tenantID, sub, nil); err != nil {
		return nil, err
	}
	return sub, nil
}

// Subscribe charges the payment method and replaces the tenant's record with
// an active paid subscription. On any failure the previous record is left
// untouched; a declined charge persists nothing.
func (s *Service) Subscribe(ctx context.Context, tenantID uint, in SubscribeInput) (*models.Subscription, error) {
	unlock, err := s.acquire(tenantID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	in.PlanCode = strings.ToLower(strings.TrimSpace(in.PlanCode))
	in.BillingInterval = strings.ToLower(strings.TrimSpace(in.BillingInterval))
	if err := s.validate.Struct(in); err != nil {
		return nil, &ValidationError{Cause: err}
	}

	plan, err := s.repo.GetPlanByCode(in.PlanCode)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, &ValidationError{Cause: fmt.Errorf("unknown plan %q", in.PlanCode)}
	}

	amount := plan.PriceFor(in.BillingInterval)
	result, err := s.gateway.Charge(ctx, tenantID, in.PaymentMethod, amount)
	if err != nil {
		return nil, err
	}
	if !result.Approved {
		return nil, ErrPaymentDeclined
	}

	now := s.now()
	next := addBillingInterval(now, in.BillingInterval)
	sub := &models.Subscription{
		ID:                      uuid.NewString(),
		TenantID:                tenantID,
		PlanID:                  plan.ID,
		Status:                  models.SubscriptionStatusActive,
		NextBillingAt:           &next,
		BillingInterval:         in.BillingInterval,
		PaymentMethodDescriptor: in.PaymentMethod,
	}
	event := &models.PaymentEvent{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		SubscriptionID: sub.ID,
		OccurredAt:     now,
		AmountCents:    amount,
		Outcome:        models.PaymentOutcomeApproved,
		Descriptor:     result.Reference,
	}
	if err := s.repo.ReplaceCurrent(tenantID, sub, event); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel transitions the tenant's current subscription to canceled. The next
// billing date stays untouched, so access persists through the grace period.
// Cancel itself appends no payment event.
func (s *Service) Cancel(ctx context.Context, tenantID uint, subscriptionID string) (*models.Subscription, error) {
	unlock, err := s.acquire(tenantID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	_ = ctx

	sub, err := s.currentMatching(tenantID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionStatusActive {
		return nil, ErrInvalidState
	}

	sub.Status = models.SubscriptionStatusCanceled
	if err := s.repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Reactivate turns a canceled subscription, within or after its grace
// period, back to active. Illegal from any other status.
func (s *Service) Reactivate(ctx context.Context, tenantID uint, subscriptionID string) (*models.Subscription, error) {
	unlock, err := s.acquire(tenantID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	_ = ctx

	sub, err := s.currentMatching(tenantID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionStatusCanceled {
		return nil, ErrInvalidState
	}

	sub.Status = models.SubscriptionStatusActive
	if err := s.repo.Save(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// PaymentHistory returns the tenant's append-only payment history in order.
func (s *Service) PaymentHistory(ctx context.Context, tenantID uint) ([]models.PaymentEvent, error) {
	_ = ctx
	return s.repo.ListPaymentEvents(tenantID)
}

func (s *Service) currentMatching(tenantID uint, subscriptionID string) (*models.Subscription, error) {
	sub, err := s.repo.GetCurrentByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.ID != subscriptionID {
		return nil, ErrNotFound
	}
	return sub, nil
}

// acquire takes the tenant's mutation lock without blocking. The returned
// unlock func must be deferred by the caller.
func (s *Service) acquire(tenantID uint) (func(), error) {
	v, _ := s.locks.LoadOrStore(tenantID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, ErrOperationInProgress
	}
	return mu.Unlock, nil
}

func addBillingInterval(t time.Time, interval string) time.Time {
	if interval == models.BillingIntervalYear {
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}
