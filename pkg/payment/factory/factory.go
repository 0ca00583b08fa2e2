// Package factory constructs provider adapters from merchant credentials
package factory

import (
	"lipapay/app/models/credential"
	"lipapay/pkg/payment/mpesa"
	"lipapay/pkg/payment/paypal"
	"lipapay/pkg/payment/types"
)

// NewAdapter builds the adapter matching the credential's provider
func NewAdapter(cred *credential.ProviderCredential, cfg types.Config, cache types.TokenCache) (types.Adapter, error) {
	switch types.Provider(cred.Provider) {
	case types.ProviderMpesa:
		return mpesa.New(cred, cfg, cache), nil

	case types.ProviderPaypal:
		return paypal.New(cred, cfg)

	default:
		return nil, types.ErrProviderNotFound
	}
}

// ParseCallback dispatches a raw callback payload to the provider's parser.
// Parsing needs no credentials, so the reconciler calls this directly.
func ParseCallback(provider types.Provider, raw []byte) (*types.CallbackEvent, error) {
	switch provider {
	case types.ProviderMpesa:
		return mpesa.ParseCallback(raw)

	case types.ProviderPaypal:
		return paypal.ParseCallback(raw)

	default:
		return nil, types.ErrProviderNotFound
	}
}
