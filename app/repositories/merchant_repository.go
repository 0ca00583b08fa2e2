package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lipapay/app/models/merchant"
	"lipapay/pkg/database"
)

// MerchantRepository merchant profile store backed by gorm
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a repository instance
func NewMerchantRepository() *MerchantRepository {
	return &MerchantRepository{
		db: database.DB,
	}
}

// GetByID fetches a merchant by primary key, (nil, nil) when absent
func (r *MerchantRepository) GetByID(ctx context.Context, id uint64) (*merchant.Merchant, error) {
	var m merchant.Merchant
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByAPIKey fetches a merchant by API key, used by the auth middleware,
// (nil, nil) when absent
func (r *MerchantRepository) GetByAPIKey(ctx context.Context, apiKey string) (*merchant.Merchant, error) {
	var m merchant.Merchant
	err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SetSelectedPlan cascade target for subscription activation
func (r *MerchantRepository) SetSelectedPlan(ctx context.Context, merchantID uint64, plan string) error {
	return r.db.WithContext(ctx).
		Model(&merchant.Merchant{}).
		Where("id = ?", merchantID).
		Update("selected_plan", plan).Error
}
