package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lipapay/app/models/invoice"
	"lipapay/pkg/database"
)

// InvoiceRepository invoice store backed by gorm
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a repository instance
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		db: database.DB,
	}
}

// GetByID fetches an invoice by primary key, (nil, nil) when absent
func (r *InvoiceRepository) GetByID(ctx context.Context, id uint64) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.WithContext(ctx).First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkPaid flips an invoice to paid. Cascade target: already-paid invoices
// stay untouched so redeliveries cannot move PaidAt.
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id uint64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&invoice.Invoice{}).
		Where("id = ? AND status = ?", id, invoice.StatusUnpaid).
		Updates(map[string]interface{}{
			"status":  invoice.StatusPaid,
			"paid_at": now,
		}).Error
}
