package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lipapay/app/models/transaction"
	"lipapay/pkg/database"
	"lipapay/pkg/payment/types"
)

// TransactionRepository transaction store backed by gorm
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a repository instance
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		db: database.DB,
	}
}

// Create inserts a transaction record
func (r *TransactionRepository) Create(ctx context.Context, tx *transaction.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetByID fetches a transaction by primary key, (nil, nil) when absent
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	err := r.db.WithContext(ctx).First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetByCorrelationID fetches a transaction by its provider issued id,
// (nil, nil) when absent
func (r *TransactionRepository) GetByCorrelationID(ctx context.Context, provider types.Provider, correlationID string) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	err := r.db.WithContext(ctx).
		Where("provider = ? AND correlation_id = ?", string(provider), correlationID).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateIfStatus applies updates only while the row still holds the expected
// status. The WHERE clause makes the transition atomic: under concurrent
// deliveries exactly one writer sees RowsAffected == 1.
func (r *TransactionRepository) UpdateIfStatus(ctx context.Context, id uint64, expected string, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&transaction.Transaction{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
