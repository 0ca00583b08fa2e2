package merchant

import (
	"time"
)

// Merchant account profile. Country drives payer number normalization,
// SelectedPlan is cascade-written on subscription activation.
type Merchant struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(128)" json:"name"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex" json:"email"`
	APIKey       string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	Country      string    `gorm:"type:varchar(2)" json:"country"`
	SelectedPlan string    `gorm:"type:varchar(64)" json:"selected_plan"`
	CreatedAt    time.Time `gorm:"" json:"created_at"`
	UpdatedAt    time.Time `gorm:"" json:"updated_at"`
}

// TableName sets the table name
func (Merchant) TableName() string {
	return "merchants"
}
