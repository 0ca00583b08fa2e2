package credential

import (
	"time"
)

// ProviderCredential per-merchant provider secrets. A merchant has at most
// one active row per provider; inactive rows are kept for rotation history.
type ProviderCredential struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID     uint64    `gorm:"index:idx_cred_merchant_provider" json:"merchant_id"`
	Provider       string    `gorm:"type:varchar(20);index:idx_cred_merchant_provider" json:"provider"`
	Environment    string    `gorm:"type:varchar(16)" json:"environment"`
	Active         bool      `gorm:"index" json:"active"`
	ConsumerKey    string    `gorm:"type:varchar(128)" json:"-"`
	ConsumerSecret string    `gorm:"type:varchar(128)" json:"-"`
	ShortCode      string    `gorm:"type:varchar(16)" json:"short_code"`
	Passkey        string    `gorm:"type:varchar(128)" json:"-"`
	CreatedAt      time.Time `gorm:"" json:"created_at"`
	UpdatedAt      time.Time `gorm:"" json:"updated_at"`
}

// TableName sets the table name
func (ProviderCredential) TableName() string {
	return "provider_credentials"
}
