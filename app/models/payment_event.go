package models

import "time"

const (
	PaymentOutcomeApproved = "approved"
	PaymentOutcomeDeclined = "declined"
	PaymentOutcomePending  = "pending"
)

// PaymentEvent is one entry of a tenant's payment history. The history is
// append-only: no update or delete path exists anywhere in the codebase.
type PaymentEvent struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID       uint      `gorm:"not null;index" json:"tenant_id"`
	SubscriptionID string    `gorm:"type:char(36);index" json:"subscription_id"`
	OccurredAt     time.Time `gorm:"type:timestamp;not null" json:"occurred_at"`
	AmountCents    int       `gorm:"not null" json:"amount_cents"`
	Outcome        string    `gorm:"type:varchar(16);not null" json:"outcome"`
	Descriptor     string    `gorm:"type:varchar(191);default:''" json:"descriptor"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
