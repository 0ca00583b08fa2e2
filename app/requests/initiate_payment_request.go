package requests

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// InitiatePaymentRequest payload of POST /v1/payments. Amount may be omitted
// when the request references an invoice or a payment link, those pin the
// amount server side.
type InitiatePaymentRequest struct {
	Amount         float64 `json:"amount" valid:"amount"`
	Currency       string  `json:"currency" valid:"currency"`
	PayerReference string  `json:"payer_reference" valid:"payer_reference"`
	Provider       string  `json:"provider" valid:"provider"`
	InvoiceID      *uint64 `json:"invoice_id"`
	LinkSlug       string  `json:"link_slug"`
	Plan           string  `json:"plan"`
	Description    string  `json:"description" valid:"description"`
}

// ValidateInitiatePayment binds and validates the initiate payload
func ValidateInitiatePayment(c *gin.Context) (*InitiatePaymentRequest, error) {
	rules := govalidator.MapData{
		"provider":        []string{"required", "in:mpesa,paypal"},
		"payer_reference": []string{"required", "min:4", "max:32"},
		"currency":        []string{"max:8"},
		"description":     []string{"max:255"},
	}

	messages := govalidator.MapData{
		"provider": []string{
			"required:provider is required",
			"in:provider must be mpesa or paypal",
		},
		"payer_reference": []string{
			"required:payer_reference is required",
			"min:payer_reference is too short",
			"max:payer_reference is too long",
		},
	}

	req, err := ValidateRequest[InitiatePaymentRequest](c, rules, messages)
	if err != nil {
		return nil, err
	}

	// the amount must come from somewhere: the body, an invoice or a link
	if req.Amount == 0 && req.InvoiceID == nil && req.LinkSlug == "" {
		return nil, fmt.Errorf("one of amount, invoice_id or link_slug is required")
	}

	return &req, nil
}
