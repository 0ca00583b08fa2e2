package payment

import (
	"context"
	"sync"
	"time"

	"lipapay/app/models/credential"
	"lipapay/app/models/invoice"
	"lipapay/app/models/link"
	"lipapay/app/models/merchant"
	"lipapay/app/models/subscription"
	"lipapay/app/models/transaction"
	"lipapay/pkg/payment/types"
)

// memTransactionStore in-memory TransactionStore with the same conditional
// update semantics as the database repository
type memTransactionStore struct {
	mu          sync.Mutex
	nextID      uint64
	byID        map[uint64]*transaction.Transaction
	createErr   error
	updateErr   error
	updateCalls int
}

func newMemTransactionStore() *memTransactionStore {
	return &memTransactionStore{byID: map[uint64]*transaction.Transaction{}}
}

func (s *memTransactionStore) Create(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	tx.ID = s.nextID
	cp := *tx
	s.byID[tx.ID] = &cp
	return nil
}

func (s *memTransactionStore) GetByID(_ context.Context, id uint64) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (s *memTransactionStore) GetByCorrelationID(_ context.Context, provider types.Provider, correlationID string) (*transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tx := range s.byID {
		if tx.Provider == string(provider) && tx.CorrelationID == correlationID {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memTransactionStore) UpdateIfStatus(_ context.Context, id uint64, expected string, updates map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	if s.updateErr != nil {
		return false, s.updateErr
	}
	tx, ok := s.byID[id]
	if !ok || tx.Status != expected {
		return false, nil
	}
	for key, value := range updates {
		switch key {
		case "status":
			tx.Status = value.(string)
		case "result_code":
			tx.ResultCode = value.(int)
		case "result_desc":
			tx.ResultDesc = value.(string)
		case "receipt_id":
			tx.ReceiptID = value.(string)
		case "paid_at":
			t := value.(time.Time)
			tx.PaidAt = &t
		}
	}
	return true, nil
}

// memSubscriptionStore in-memory SubscriptionStore
type memSubscriptionStore struct {
	mu          sync.Mutex
	nextID      uint64
	byID        map[uint64]*subscription.Subscription
	createErr   error
	updateCalls int
}

func newMemSubscriptionStore() *memSubscriptionStore {
	return &memSubscriptionStore{byID: map[uint64]*subscription.Subscription{}}
}

func (s *memSubscriptionStore) Create(_ context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	sub.ID = s.nextID
	cp := *sub
	s.byID[sub.ID] = &cp
	return nil
}

func (s *memSubscriptionStore) GetByCorrelationID(_ context.Context, provider types.Provider, correlationID string) (*subscription.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.byID {
		if sub.Provider == string(provider) && sub.CorrelationID == correlationID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memSubscriptionStore) UpdateIfStatus(_ context.Context, id uint64, expected string, updates map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	sub, ok := s.byID[id]
	if !ok || sub.Status != expected {
		return false, nil
	}
	for key, value := range updates {
		switch key {
		case "status":
			sub.Status = value.(string)
		case "failure_reason":
			sub.FailureReason = value.(string)
		case "start_date":
			t := value.(time.Time)
			sub.StartDate = &t
		case "end_date":
			t := value.(time.Time)
			sub.EndDate = &t
		}
	}
	return true, nil
}

// memInvoiceStore in-memory InvoiceStore
type memInvoiceStore struct {
	mu            sync.Mutex
	byID          map[uint64]*invoice.Invoice
	markPaidErr   error
	markPaidCalls int
}

func newMemInvoiceStore() *memInvoiceStore {
	return &memInvoiceStore{byID: map[uint64]*invoice.Invoice{}}
}

func (s *memInvoiceStore) GetByID(_ context.Context, id uint64) (*invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (s *memInvoiceStore) MarkPaid(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markPaidCalls++
	if s.markPaidErr != nil {
		return s.markPaidErr
	}
	if inv, ok := s.byID[id]; ok && inv.Status == invoice.StatusUnpaid {
		inv.Status = invoice.StatusPaid
	}
	return nil
}

// memProfileStore in-memory ProfileStore
type memProfileStore struct {
	mu         sync.Mutex
	byID       map[uint64]*merchant.Merchant
	setPlanErr error
	plans      map[uint64]string
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{
		byID:  map[uint64]*merchant.Merchant{},
		plans: map[uint64]string{},
	}
}

func (s *memProfileStore) GetByID(_ context.Context, id uint64) (*merchant.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (s *memProfileStore) SetSelectedPlan(_ context.Context, merchantID uint64, plan string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setPlanErr != nil {
		return s.setPlanErr
	}
	s.plans[merchantID] = plan
	if m, ok := s.byID[merchantID]; ok {
		m.SelectedPlan = plan
	}
	return nil
}

// memCredentialStore in-memory CredentialStore
type memCredentialStore struct {
	cred *credential.ProviderCredential
	err  error
}

func (s *memCredentialStore) GetActive(_ context.Context, merchantID uint64, provider types.Provider) (*credential.ProviderCredential, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cred == nil || s.cred.MerchantID != merchantID || s.cred.Provider != string(provider) {
		return nil, nil
	}
	cp := *s.cred
	return &cp, nil
}

// memLinkStore in-memory LinkStore
type memLinkStore struct {
	bySlug map[string]*link.PaymentLink
}

func (s *memLinkStore) GetBySlug(_ context.Context, slug string) (*link.PaymentLink, error) {
	l, ok := s.bySlug[slug]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

// fakeAdapter scripted Adapter implementation recording what it was handed
type fakeAdapter struct {
	provider      types.Provider
	tokenErr      error
	initiateErr   error
	result        *types.InitiationResult
	gotToken      string
	gotInitiation *types.InitiationRequest
}

func (f *fakeAdapter) Provider() types.Provider { return f.provider }

func (f *fakeAdapter) AcquireToken(_ context.Context) (string, error) {
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return "test-token", nil
}

func (f *fakeAdapter) Initiate(_ context.Context, token string, req *types.InitiationRequest) (*types.InitiationResult, error) {
	f.gotToken = token
	f.gotInitiation = req
	if f.initiateErr != nil {
		return nil, f.initiateErr
	}
	return f.result, nil
}

func (f *fakeAdapter) ParseCallback(raw []byte) (*types.CallbackEvent, error) {
	return nil, nil
}

func (f *fakeAdapter) CallbackURL() string { return "http://example.test/callback/" + string(f.provider) }
