package invoice

import (
	"time"
)

// Invoice billable document a transaction may settle
type Invoice struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID uint64     `gorm:"index" json:"merchant_id"`
	Number     string     `gorm:"type:varchar(32);uniqueIndex" json:"number"`
	Amount     float64    `gorm:"" json:"amount"`
	Currency   string     `gorm:"type:varchar(8)" json:"currency"`
	Status     string     `gorm:"type:varchar(20);index" json:"status"`
	PaidAt     *time.Time `gorm:"" json:"paid_at,omitempty"`
	CreatedAt  time.Time  `gorm:"" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"" json:"updated_at"`
}

// TableName sets the table name
func (Invoice) TableName() string {
	return "invoices"
}

// Status values
const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
)
