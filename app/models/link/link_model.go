package link

import (
	"time"
)

// PaymentLink shareable fixed-amount collection link; initiate requests may
// reference the slug instead of carrying an amount
type PaymentLink struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID  uint64    `gorm:"index" json:"merchant_id"`
	Slug        string    `gorm:"type:varchar(64);uniqueIndex" json:"slug"`
	Amount      float64   `gorm:"" json:"amount"`
	Currency    string    `gorm:"type:varchar(8)" json:"currency"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `gorm:"" json:"created_at"`
	UpdatedAt   time.Time `gorm:"" json:"updated_at"`
}

// TableName sets the table name
func (PaymentLink) TableName() string {
	return "payment_links"
}
