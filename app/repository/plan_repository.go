package repository

import (
	"github.com/ManuelReschke/TableFox/app/models"
	"gorm.io/gorm"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// GetByCode retrieves a plan by its code, e.g. "starter" or "pro"
func (r *planRepository) GetByCode(code string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("code = ?", code).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListActive returns all plans currently offered, cheapest first
func (r *planRepository) ListActive() ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.Where("active = ?", true).Order("price_monthly_cents ASC").Find(&plans).Error
	return plans, err
}
