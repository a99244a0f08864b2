package models

import "time"

const (
	PlanCodeStarter = "starter"
	PlanCodePro     = "pro"
)

// Plan is a bookable subscription plan. The catalog is seeded by migration
// and only toggled via the Active flag, never deleted.
type Plan struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Code              string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name"`
	Description       string    `gorm:"type:text" json:"description"`
	PriceMonthlyCents int       `gorm:"not null;default:0" json:"price_monthly_cents"`
	PriceYearlyCents  int       `gorm:"not null;default:0" json:"price_yearly_cents"`
	Active            bool      `gorm:"default:true;index" json:"active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PriceFor returns the price in cents for the given billing interval.
func (p *Plan) PriceFor(interval string) int {
	if interval == BillingIntervalYear {
		return p.PriceYearlyCents
	}
	return p.PriceMonthlyCents
}
