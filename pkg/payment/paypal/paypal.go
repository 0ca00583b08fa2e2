// Package paypal implements the order-capture adapter: client-credentials
// token grant, CAPTURE-intent order creation with the payer redirected to an
// approval URL, and parsing of the asynchronous webhook events.
package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	paypallib "github.com/plutov/paypal/v4"
	"github.com/spf13/cast"

	"lipapay/app/models/credential"
	"lipapay/pkg/payment/types"
)

// webhook event types we act on
const (
	EventCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"
	EventOrderApproved    = "CHECKOUT.ORDER.APPROVED"
	EventCaptureDenied    = "PAYMENT.CAPTURE.DENIED"
	EventOrderVoided      = "CHECKOUT.ORDER.VOIDED"
)

// Adapter drives the order-capture API for one merchant credential set
type Adapter struct {
	client      *paypallib.Client
	callbackURL string
	siteURL     string
}

// New builds an adapter from the merchant's active credential set
func New(cred *credential.ProviderCredential, cfg types.Config) (*Adapter, error) {
	base := paypallib.APIBaseSandBox
	if cred.IsProduction() {
		base = paypallib.APIBaseLive
	}

	client, err := paypallib.NewClient(cred.ConsumerKey, cred.ConsumerSecret, base)
	if err != nil {
		return nil, fmt.Errorf("create paypal client: %w", err)
	}
	client.Client = &http.Client{Timeout: cfg.Timeout}

	return &Adapter{
		client:      client,
		callbackURL: cfg.PublicBaseURL + "/callback/" + string(types.ProviderPaypal),
		siteURL:     cfg.SiteURL,
	}, nil
}

// Provider implements types.Adapter
func (a *Adapter) Provider() types.Provider {
	return types.ProviderPaypal
}

// CallbackURL implements types.Adapter
func (a *Adapter) CallbackURL() string {
	return a.callbackURL
}

// AcquireToken runs the client-credentials grant. The SDK keeps the token on
// the client for subsequent calls; the returned value is informational.
func (a *Adapter) AcquireToken(ctx context.Context) (string, error) {
	token, err := a.client.GetAccessToken(ctx)
	if err != nil {
		return "", &types.ProviderAuthError{Provider: types.ProviderPaypal, Err: err}
	}
	return token.Token, nil
}

// Initiate creates a CAPTURE-intent order. The correlation id is the order
// id; the payer completes approval on the returned redirect URL and the
// outcome arrives later on the webhook.
func (a *Adapter) Initiate(ctx context.Context, _ string, req *types.InitiationRequest) (*types.InitiationResult, error) {
	purchaseUnits := []paypallib.PurchaseUnitRequest{
		{
			ReferenceID: req.AccountReference,
			Amount: &paypallib.PurchaseUnitAmount{
				Currency: strings.ToUpper(req.Currency),
				Value:    fmt.Sprintf("%.2f", req.Amount),
			},
			Description: req.Description,
		},
	}

	applicationContext := &paypallib.ApplicationContext{
		ReturnURL: a.siteURL + "/pay/return",
		CancelURL: a.siteURL + "/pay/cancel",
	}

	order, err := a.client.CreateOrder(ctx, paypallib.OrderIntentCapture, purchaseUnits, nil, applicationContext)
	if err != nil {
		return nil, &types.ProviderRejectedError{
			Provider: types.ProviderPaypal,
			Code:     "create_order_failed",
			Message:  err.Error(),
		}
	}

	approvalURL := approvalLink(order)
	if approvalURL == "" {
		return nil, &types.ProviderRejectedError{
			Provider: types.ProviderPaypal,
			Code:     order.Status,
			Message:  "order has no approval link",
		}
	}

	return &types.InitiationResult{
		CorrelationID:   order.ID,
		RedirectURL:     approvalURL,
		CustomerMessage: "complete the payment on the approval page",
	}, nil
}

// approvalLink scans the order links for the payer approval URL
func approvalLink(order *paypallib.Order) string {
	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}

type webhookEnvelope struct {
	EventType string           `json:"event_type"`
	Resource  *webhookResource `json:"resource"`
}

type webhookResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount *struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
	SupplementaryData *struct {
		RelatedIDs struct {
			OrderID string `json:"order_id"`
		} `json:"related_ids"`
	} `json:"supplementary_data"`
}

// ParseCallback validates the webhook envelope and applies the outcome rule:
// capture-completed and order-approved events are successes, explicit denial
// and void events failures. Anything else is rejected as an unknown shape.
func ParseCallback(raw []byte) (*types.CallbackEvent, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, types.NewValidationError("paypal webhook is not valid JSON: %v", err)
	}
	if envelope.EventType == "" || envelope.Resource == nil {
		return nil, types.NewValidationError("payload does not match the webhook envelope")
	}

	resource := envelope.Resource
	event := &types.CallbackEvent{
		Provider:      types.ProviderPaypal,
		CorrelationID: correlationID(resource),
		ResultDesc:    envelope.EventType,
		ReceiptID:     resource.ID,
	}
	if resource.Amount != nil {
		event.Amount = cast.ToFloat64(resource.Amount.Value)
	}

	switch envelope.EventType {
	case EventCaptureCompleted, EventOrderApproved:
		event.Succeeded = true
	case EventCaptureDenied, EventOrderVoided:
		event.Succeeded = false
	default:
		return nil, types.NewValidationError("unhandled event type %s", envelope.EventType)
	}

	if event.CorrelationID == "" {
		return nil, types.NewValidationError("webhook resource carries no order id")
	}
	return event, nil
}

// correlationID recovers the initiating order id: capture events carry it in
// supplementary_data, order events are the order itself
func correlationID(resource *webhookResource) string {
	if resource.SupplementaryData != nil && resource.SupplementaryData.RelatedIDs.OrderID != "" {
		return resource.SupplementaryData.RelatedIDs.OrderID
	}
	return resource.ID
}

// ParseCallback implements types.Adapter
func (a *Adapter) ParseCallback(raw []byte) (*types.CallbackEvent, error) {
	return ParseCallback(raw)
}
