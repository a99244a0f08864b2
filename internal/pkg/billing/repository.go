package billing

import (
	"errors"

	"github.com/ManuelReschke/TableFox/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the subscription lifecycle
// service and the state resolver. It is the only write path to a tenant's
// subscription record.
type Repository interface {
	// GetCurrentByTenant returns the tenant's current subscription record,
	// or nil without error when the tenant has none yet.
	GetCurrentByTenant(tenantID uint) (*models.Subscription, error)
	// ReplaceCurrent swaps the tenant's current record for sub in one
	// transaction, optionally appending a payment event. All or nothing;
	// two concurrently active records can never exist.
	ReplaceCurrent(tenantID uint, sub *models.Subscription, event *models.PaymentEvent) error
	Save(sub *models.Subscription) error
	GetPlanByCode(code string) (*models.Plan, error)
	ListPaymentEvents(tenantID uint) ([]models.PaymentEvent, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a subscription repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetCurrentByTenant(tenantID uint) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Where("tenant_id = ?", tenantID).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &StorageError{Op: "read", Cause: err}
	}
	return &sub, nil
}

func (r *gormRepository) ReplaceCurrent(tenantID uint, sub *models.Subscription, event *models.PaymentEvent) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("tenant_id = ?", tenantID).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		if event != nil {
			if err := tx.Create(event).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &StorageError{Op: "replace", Cause: err}
	}
	return nil
}

func (r *gormRepository) Save(sub *models.Subscription) error {
	if err := r.db.Save(sub).Error; err != nil {
		return &StorageError{Op: "write", Cause: err}
	}
	return nil
}

func (r *gormRepository) GetPlanByCode(code string) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Where("code = ? AND active = ?", code, true).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &StorageError{Op: "read", Cause: err}
	}
	return &plan, nil
}

func (r *gormRepository) ListPaymentEvents(tenantID uint) ([]models.PaymentEvent, error) {
	var events []models.PaymentEvent
	err := r.db.Where("tenant_id = ?", tenantID).Order("occurred_at ASC, created_at ASC").Find(&events).Error
	if err != nil {
		return nil, &StorageError{Op: "read", Cause: err}
	}
	return events, nil
}
