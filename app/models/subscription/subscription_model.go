package subscription

import (
	"time"
)

// Subscription plan purchase record, activated by the provider callback
type Subscription struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MerchantID    uint64     `gorm:"index" json:"merchant_id"`
	PlanName      string     `gorm:"type:varchar(64)" json:"plan_name"`
	Amount        float64    `gorm:"" json:"amount"`
	Currency      string     `gorm:"type:varchar(8)" json:"currency"`
	Provider      string     `gorm:"type:varchar(20);uniqueIndex:idx_sub_provider_correlation" json:"provider"`
	CorrelationID string     `gorm:"type:varchar(64);uniqueIndex:idx_sub_provider_correlation" json:"correlation_id"`
	Status        string     `gorm:"type:varchar(20);index" json:"status"`
	StartDate     *time.Time `gorm:"" json:"start_date,omitempty"`
	EndDate       *time.Time `gorm:"" json:"end_date,omitempty"`
	FailureReason string     `gorm:"type:varchar(255)" json:"failure_reason"`
	CreatedAt     time.Time  `gorm:"" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"" json:"updated_at"`
}

// TableName sets the table name
func (Subscription) TableName() string {
	return "subscriptions"
}
