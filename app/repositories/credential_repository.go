package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lipapay/app/models/credential"
	"lipapay/pkg/database"
	"lipapay/pkg/payment/types"
)

// CredentialRepository provider credential store backed by gorm
type CredentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository creates a repository instance
func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		db: database.DB,
	}
}

// GetActive fetches the merchant's single active credential set for a
// provider, (nil, nil) when none is configured or none is flagged active
func (r *CredentialRepository) GetActive(ctx context.Context, merchantID uint64, provider types.Provider) (*credential.ProviderCredential, error) {
	var cred credential.ProviderCredential
	err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND provider = ? AND active = ?", merchantID, string(provider), true).
		First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}
