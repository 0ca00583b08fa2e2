package payment

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"lipapay/app/models/credential"
	"lipapay/app/models/subscription"
	"lipapay/app/models/transaction"
	"lipapay/pkg/payment/factory"
	"lipapay/pkg/payment/types"
	"lipapay/pkg/phone"
)

// adapterFactory builds an adapter for a credential set, swapped in tests
type adapterFactory func(cred *credential.ProviderCredential, cfg types.Config, cache types.TokenCache) (types.Adapter, error)

// Initiator validates caller input, resolves the merchant's credentials,
// drives the provider adapter and persists exactly one pending record on
// provider acceptance.
type Initiator struct {
	cfg           types.Config
	credentials   types.CredentialStore
	transactions  types.TransactionStore
	subscriptions types.SubscriptionStore
	invoices      types.InvoiceStore
	profiles      types.ProfileStore
	links         types.LinkStore
	cache         types.TokenCache
	logger        *zap.Logger
	newAdapter    adapterFactory
}

// NewInitiator wires an Initiator. logger may be nil.
func NewInitiator(
	cfg types.Config,
	credentials types.CredentialStore,
	transactions types.TransactionStore,
	subscriptions types.SubscriptionStore,
	invoices types.InvoiceStore,
	profiles types.ProfileStore,
	links types.LinkStore,
	cache types.TokenCache,
	logger *zap.Logger,
) *Initiator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Initiator{
		cfg:           cfg,
		credentials:   credentials,
		transactions:  transactions,
		subscriptions: subscriptions,
		invoices:      invoices,
		profiles:      profiles,
		links:         links,
		cache:         cache,
		logger:        logger,
		newAdapter:    factory.NewAdapter,
	}
}

// Initiate starts a payment. Side effects on success: one outbound provider
// request that creates external pending state, and one local insert. A
// provider rejection persists nothing.
func (i *Initiator) Initiate(ctx context.Context, req *types.InitiateRequest) (*types.InitiateResult, error) {
	if !req.Provider.Valid() {
		return nil, types.NewValidationError("unknown provider %q", req.Provider)
	}

	m, err := i.profiles.GetByID(ctx, req.MerchantID)
	if err != nil {
		return nil, fmt.Errorf("load merchant %d: %w", req.MerchantID, err)
	}
	if m == nil {
		return nil, types.NewValidationError("unknown merchant %d", req.MerchantID)
	}

	amount := req.Amount
	currency := req.Currency
	accountReference := ""
	description := req.Description
	var invoiceID, linkID *uint64

	// an invoice or payment link pins the amount and the account reference
	switch {
	case req.InvoiceID != nil:
		inv, err := i.invoices.GetByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, fmt.Errorf("load invoice %d: %w", *req.InvoiceID, err)
		}
		if inv == nil || inv.MerchantID != req.MerchantID {
			return nil, types.NewValidationError("unknown invoice %d", *req.InvoiceID)
		}
		amount, currency, accountReference = inv.Amount, inv.Currency, inv.Number
		invoiceID = req.InvoiceID

	case req.LinkSlug != "":
		l, err := i.links.GetBySlug(ctx, req.LinkSlug)
		if err != nil {
			return nil, fmt.Errorf("load payment link %q: %w", req.LinkSlug, err)
		}
		if l == nil || l.MerchantID != req.MerchantID {
			return nil, types.NewValidationError("unknown payment link %q", req.LinkSlug)
		}
		amount, currency = l.Amount, l.Currency
		linkID = &l.ID
		if description == "" {
			description = l.Description
		}
	}

	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return nil, types.NewValidationError("amount must be a positive number")
	}

	payerReference := req.PayerReference
	if req.Provider == types.ProviderMpesa {
		payerReference, err = phone.Normalize(m.Country, req.PayerReference)
		if err != nil {
			return nil, types.NewValidationError("payer number %q is not a valid %s mobile number", req.PayerReference, m.Country)
		}
	}

	cred, err := i.credentials.GetActive(ctx, req.MerchantID, req.Provider)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if cred == nil {
		return nil, &types.CredentialError{
			Provider: req.Provider,
			Message:  "merchant has no active credentials for this provider",
		}
	}

	adapter, err := i.newAdapter(cred, i.cfg, i.cache)
	if err != nil {
		return nil, err
	}

	token, err := adapter.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}

	if accountReference == "" {
		accountReference = generateReference()
	}

	accepted, err := adapter.Initiate(ctx, token, &types.InitiationRequest{
		Amount:           amount,
		Currency:         currency,
		PayerReference:   payerReference,
		AccountReference: accountReference,
		Description:      description,
	})
	if err != nil {
		// the provider declined, nothing to correlate later
		return nil, err
	}

	// exactly one local insert, only after provider acceptance
	var recordID uint64
	if req.Plan != "" {
		sub := &subscription.Subscription{
			MerchantID:    req.MerchantID,
			PlanName:      req.Plan,
			Amount:        amount,
			Currency:      currency,
			Provider:      string(req.Provider),
			CorrelationID: accepted.CorrelationID,
			Status:        subscription.StatusPending,
		}
		if err := i.subscriptions.Create(ctx, sub); err != nil {
			return nil, fmt.Errorf("persist pending subscription: %w", err)
		}
		recordID = sub.ID
	} else {
		tx := &transaction.Transaction{
			MerchantID:     req.MerchantID,
			InvoiceID:      invoiceID,
			LinkID:         linkID,
			Amount:         amount,
			Currency:       currency,
			PayerReference: payerReference,
			Provider:       string(req.Provider),
			CorrelationID:  accepted.CorrelationID,
			Status:         transaction.StatusPending,
			Description:    description,
		}
		if err := i.transactions.Create(ctx, tx); err != nil {
			return nil, fmt.Errorf("persist pending transaction: %w", err)
		}
		recordID = tx.ID
	}

	i.logger.Info("payment initiated",
		zap.String("provider", string(req.Provider)),
		zap.String("correlation_id", accepted.CorrelationID),
		zap.Uint64("merchant_id", req.MerchantID),
		zap.Uint64("record_id", recordID),
	)

	message := accepted.CustomerMessage
	if message == "" {
		message = "payment initiated, awaiting confirmation"
	}
	return &types.InitiateResult{
		CorrelationID: accepted.CorrelationID,
		TransactionID: recordID,
		RedirectURL:   accepted.RedirectURL,
		Message:       message,
	}, nil
}
