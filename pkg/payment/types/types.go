// Package types holds the contracts shared by the payment core: provider
// enums, adapter and store interfaces, and the request/result/event shapes
// that cross them.
package types

import (
	"context"
	"time"

	"lipapay/app/models/credential"
	"lipapay/app/models/invoice"
	"lipapay/app/models/link"
	"lipapay/app/models/merchant"
	"lipapay/app/models/subscription"
	"lipapay/app/models/transaction"
)

// Provider payment provider identifier, doubles as the callback route segment
type Provider string

const (
	// ProviderMpesa mobile money STK push
	ProviderMpesa Provider = "mpesa"
	// ProviderPaypal card/wallet order capture
	ProviderPaypal Provider = "paypal"
)

// Valid reports whether the provider is one we integrate
func (p Provider) Valid() bool {
	return p == ProviderMpesa || p == ProviderPaypal
}

// InitiateRequest caller-level input to the Initiator
type InitiateRequest struct {
	MerchantID     uint64
	Amount         float64
	Currency       string
	PayerReference string
	Provider       Provider
	InvoiceID      *uint64
	LinkSlug       string
	Plan           string
	Description    string
}

// InitiateResult what the caller gets back after provider acceptance
type InitiateResult struct {
	CorrelationID string `json:"correlation_id"`
	TransactionID uint64 `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	Message       string `json:"message"`
}

// InitiationRequest normalized input handed to a provider adapter
type InitiationRequest struct {
	Amount           float64
	Currency         string
	PayerReference   string
	AccountReference string
	Description      string
}

// InitiationResult provider acceptance of an initiation
type InitiationResult struct {
	// CorrelationID provider issued id echoed in the later callback
	CorrelationID   string
	RedirectURL     string
	CustomerMessage string
}

// CallbackEvent normalized provider callback, produced by ParseCallback.
// The adapter applies its provider's outcome rule so Succeeded is
// authoritative here.
type CallbackEvent struct {
	Provider      Provider
	CorrelationID string
	Succeeded     bool
	ResultCode    int
	ResultDesc    string
	ReceiptID     string
	Amount        float64
}

// Adapter capability set every provider integration implements
type Adapter interface {
	Provider() Provider
	// AcquireToken obtains an API access token, failures map to ProviderAuthError
	AcquireToken(ctx context.Context) (string, error)
	// Initiate builds the provider payload and submits it
	Initiate(ctx context.Context, token string, req *InitiationRequest) (*InitiationResult, error)
	// ParseCallback validates the raw envelope and extracts the outcome
	ParseCallback(raw []byte) (*CallbackEvent, error)
	// CallbackURL where the provider must deliver its callback
	CallbackURL() string
}

// Config adapter construction settings shared across providers
type Config struct {
	// PublicBaseURL externally reachable origin callbacks are routed under
	PublicBaseURL string
	// SiteURL merchant facing origin for return/cancel pages
	SiteURL string
	// Timeout cap on any single outbound provider call
	Timeout time.Duration
}

// TokenCache caches provider access tokens between initiations
type TokenCache interface {
	Get(key string) string
	Set(key string, value string, ttl time.Duration)
}

// TransactionStore persistence for transactions. Lookups return (nil, nil)
// when no record matches.
type TransactionStore interface {
	Create(ctx context.Context, tx *transaction.Transaction) error
	GetByID(ctx context.Context, id uint64) (*transaction.Transaction, error)
	GetByCorrelationID(ctx context.Context, provider Provider, correlationID string) (*transaction.Transaction, error)
	// UpdateIfStatus applies updates only when the current status equals
	// expected, atomically. Returns false when another writer won.
	UpdateIfStatus(ctx context.Context, id uint64, expected string, updates map[string]interface{}) (bool, error)
}

// SubscriptionStore persistence for subscriptions, lookup semantics as
// TransactionStore
type SubscriptionStore interface {
	Create(ctx context.Context, sub *subscription.Subscription) error
	GetByCorrelationID(ctx context.Context, provider Provider, correlationID string) (*subscription.Subscription, error)
	UpdateIfStatus(ctx context.Context, id uint64, expected string, updates map[string]interface{}) (bool, error)
}

// InvoiceStore cascade target for invoice settlement
type InvoiceStore interface {
	GetByID(ctx context.Context, id uint64) (*invoice.Invoice, error)
	MarkPaid(ctx context.Context, id uint64) error
}

// ProfileStore merchant profile reads and the selected-plan cascade target
type ProfileStore interface {
	GetByID(ctx context.Context, id uint64) (*merchant.Merchant, error)
	SetSelectedPlan(ctx context.Context, merchantID uint64, plan string) error
}

// CredentialStore resolves the merchant's active provider credentials,
// (nil, nil) when the merchant has none for the provider
type CredentialStore interface {
	GetActive(ctx context.Context, merchantID uint64, provider Provider) (*credential.ProviderCredential, error)
}

// LinkStore resolves payment link slugs
type LinkStore interface {
	GetBySlug(ctx context.Context, slug string) (*link.PaymentLink, error)
}
