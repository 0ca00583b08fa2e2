package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lipapay/app/models/link"
	"lipapay/pkg/database"
)

// LinkRepository payment link store backed by gorm
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a repository instance
func NewLinkRepository() *LinkRepository {
	return &LinkRepository{
		db: database.DB,
	}
}

// GetBySlug fetches a payment link by its slug, (nil, nil) when absent
func (r *LinkRepository) GetBySlug(ctx context.Context, slug string) (*link.PaymentLink, error) {
	var l link.PaymentLink
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}
