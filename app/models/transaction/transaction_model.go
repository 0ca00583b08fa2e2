package transaction

import (
	"time"
)

// Transaction one-off collection record, the correlation anchor between an
// initiation call and the provider's asynchronous callback
type Transaction struct {
	ID             uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID     uint64     `gorm:"index" json:"merchant_id"`
	InvoiceID      *uint64    `gorm:"index" json:"invoice_id,omitempty"`
	LinkID         *uint64    `gorm:"index" json:"link_id,omitempty"`
	Amount         float64    `gorm:"" json:"amount"`
	Currency       string     `gorm:"type:varchar(8)" json:"currency"`
	PayerReference string     `gorm:"type:varchar(32)" json:"payer_reference"`
	Provider       string     `gorm:"type:varchar(20);uniqueIndex:idx_tx_provider_correlation" json:"provider"`
	CorrelationID  string     `gorm:"type:varchar(64);uniqueIndex:idx_tx_provider_correlation" json:"correlation_id"`
	Status         string     `gorm:"type:varchar(20);index" json:"status"`
	ResultCode     int        `gorm:"" json:"result_code"`
	ResultDesc     string     `gorm:"type:varchar(255)" json:"result_desc"`
	ReceiptID      string     `gorm:"type:varchar(64)" json:"receipt_id"`
	Description    string     `gorm:"type:varchar(255)" json:"description"`
	PaidAt         *time.Time `gorm:"" json:"paid_at,omitempty"`
	CreatedAt      time.Time  `gorm:"" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"" json:"updated_at"`
}

// TableName sets the table name
func (Transaction) TableName() string {
	return "transactions"
}
