package repository

import (
	"strings"

	"github.com/ManuelReschke/TableFox/app/models"
	"gorm.io/gorm"
)

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

// Create creates a new tenant in the database
func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}

// GetByID retrieves a tenant by their ID
func (r *tenantRepository) GetByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByEmail retrieves a tenant by their email address
func (r *tenantRepository) GetByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.Where("email = ?", email).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetByAPIKeyHash resolves an active API key hash to its tenant.
func (r *tenantRepository) GetByAPIKeyHash(hash string) (*models.Tenant, error) {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var tenant models.Tenant
	err := r.db.Where("api_key_hash = ? AND api_key_hash <> '' AND api_key_revoked_at IS NULL", trimmed).
		First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// Update updates an existing tenant in the database
func (r *tenantRepository) Update(tenant *models.Tenant) error {
	return r.db.Save(tenant).Error
}

// Delete soft deletes a tenant by their ID
func (r *tenantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tenant{}, id).Error
}

// List retrieves a paginated list of tenants
func (r *tenantRepository) List(offset, limit int) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tenants).Error
	return tenants, err
}

// Count returns the total number of tenants
func (r *tenantRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tenant{}).Count(&count).Error
	return count, err
}
