package repository

import (
	"github.com/ManuelReschke/TableFox/app/models"
	"gorm.io/gorm"
)

// TenantRepository defines the interface for tenant-related database operations
type TenantRepository interface {
	Create(tenant *models.Tenant) error
	GetByID(id uint) (*models.Tenant, error)
	GetByEmail(email string) (*models.Tenant, error)
	GetByAPIKeyHash(hash string) (*models.Tenant, error)
	Update(tenant *models.Tenant) error
	Delete(id uint) error
	List(offset, limit int) ([]models.Tenant, error)
	Count() (int64, error)
}

// PlanRepository defines the interface for plan lookups
type PlanRepository interface {
	GetByCode(code string) (*models.Plan, error)
	ListActive() ([]models.Plan, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Tenant TenantRepository
	Plan   PlanRepository
}

// NewRepositories creates all repositories with the given database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tenant: NewTenantRepository(db),
		Plan:   NewPlanRepository(db),
	}
}
