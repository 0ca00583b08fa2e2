package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lipapay/app/models/subscription"
	"lipapay/pkg/database"
	"lipapay/pkg/payment/types"
)

// SubscriptionRepository subscription store backed by gorm
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a repository instance
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		db: database.DB,
	}
}

// Create inserts a subscription record
func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetByCorrelationID fetches a subscription by its provider issued id,
// (nil, nil) when absent
func (r *SubscriptionRepository) GetByCorrelationID(ctx context.Context, provider types.Provider, correlationID string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	err := r.db.WithContext(ctx).
		Where("provider = ? AND correlation_id = ?", string(provider), correlationID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateIfStatus conditional status-guarded update, see TransactionRepository
func (r *SubscriptionRepository) UpdateIfStatus(ctx context.Context, id uint64, expected string, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&subscription.Subscription{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
