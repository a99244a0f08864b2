package models

import "time"

const (
	BillingIntervalMonth = "month"
	BillingIntervalYear  = "year"
)

const (
	// SubscriptionStatusNone is the unset status of a signup record that only
	// carries a trial window. Only active and canceled are ever written by
	// lifecycle operations.
	SubscriptionStatusNone     = ""
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription is the current subscription record of a tenant. Exactly one
// row exists per tenant; lifecycle operations replace it in one transaction,
// they never leave two concurrent records.
type Subscription struct {
	ID                      string     `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID                uint       `gorm:"not null;uniqueIndex" json:"tenant_id"`
	PlanID                  uint       `gorm:"index" json:"plan_id"`
	Status                  string     `gorm:"type:varchar(32);not null;default:'';index" json:"status"`
	TrialStartedAt          *time.Time `gorm:"type:timestamp;default:null" json:"trial_started_at,omitempty"`
	TrialEndsAt             *time.Time `gorm:"type:timestamp;default:null;index" json:"trial_ends_at,omitempty"`
	NextBillingAt           *time.Time `gorm:"type:timestamp;default:null" json:"next_billing_at,omitempty"`
	BillingInterval         string     `gorm:"type:varchar(16);default:''" json:"billing_interval"`
	PaymentMethodDescriptor string     `gorm:"type:varchar(191);default:''" json:"payment_method_descriptor"`
	CreatedAt               time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsTrialOpen reports whether the record carries a trial window that has not
// lapsed at the given instant.
func (s *Subscription) IsTrialOpen(now time.Time) bool {
	return s != nil && s.TrialEndsAt != nil && now.Before(*s.TrialEndsAt)
}

// HasBillingDate reports whether a next billing date is set.
func (s *Subscription) HasBillingDate() bool {
	return s != nil && s.NextBillingAt != nil
}
