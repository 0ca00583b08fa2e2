package paypal

import (
	"errors"
	"testing"

	paypallib "github.com/plutov/paypal/v4"

	"lipapay/pkg/payment/types"
)

func TestParseCallback(t *testing.T) {
	t.Run("capture completed", func(t *testing.T) {
		raw := []byte(`{
			"event_type": "PAYMENT.CAPTURE.COMPLETED",
			"resource": {
				"id": "3C679366HH908993F",
				"status": "COMPLETED",
				"amount": {"currency_code": "USD", "value": "24.99"},
				"supplementary_data": {
					"related_ids": {"order_id": "5O190127TN364715T"}
				}
			}
		}`)

		event, err := ParseCallback(raw)
		if err != nil {
			t.Fatalf("ParseCallback: %v", err)
		}
		if !event.Succeeded {
			t.Error("want success")
		}
		if event.CorrelationID != "5O190127TN364715T" {
			t.Errorf("correlation id = %q, want the related order id", event.CorrelationID)
		}
		if event.ReceiptID != "3C679366HH908993F" {
			t.Errorf("receipt id = %q, want the capture id", event.ReceiptID)
		}
		if event.Amount != 24.99 {
			t.Errorf("amount = %v", event.Amount)
		}
	})

	t.Run("order approved falls back to resource id", func(t *testing.T) {
		raw := []byte(`{
			"event_type": "CHECKOUT.ORDER.APPROVED",
			"resource": {"id": "5O190127TN364715T", "status": "APPROVED"}
		}`)

		event, err := ParseCallback(raw)
		if err != nil {
			t.Fatalf("ParseCallback: %v", err)
		}
		if !event.Succeeded {
			t.Error("want success")
		}
		if event.CorrelationID != "5O190127TN364715T" {
			t.Errorf("correlation id = %q", event.CorrelationID)
		}
	})

	t.Run("capture denied", func(t *testing.T) {
		raw := []byte(`{
			"event_type": "PAYMENT.CAPTURE.DENIED",
			"resource": {
				"id": "7NW873794T343360M",
				"status": "DECLINED",
				"supplementary_data": {
					"related_ids": {"order_id": "5O190127TN364715T"}
				}
			}
		}`)

		event, err := ParseCallback(raw)
		if err != nil {
			t.Fatalf("ParseCallback: %v", err)
		}
		if event.Succeeded {
			t.Error("want failure")
		}
		if event.CorrelationID != "5O190127TN364715T" {
			t.Errorf("correlation id = %q", event.CorrelationID)
		}
		if event.ResultDesc != EventCaptureDenied {
			t.Errorf("result desc = %q", event.ResultDesc)
		}
	})

	t.Run("order voided", func(t *testing.T) {
		raw := []byte(`{
			"event_type": "CHECKOUT.ORDER.VOIDED",
			"resource": {"id": "5O190127TN364715T", "status": "VOIDED"}
		}`)

		event, err := ParseCallback(raw)
		if err != nil {
			t.Fatalf("ParseCallback: %v", err)
		}
		if event.Succeeded {
			t.Error("want failure")
		}
	})

	t.Run("unhandled event type", func(t *testing.T) {
		raw := []byte(`{
			"event_type": "BILLING.PLAN.CREATED",
			"resource": {"id": "P-1234"}
		}`)

		_, err := ParseCallback(raw)
		var verr *types.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("want ValidationError, got %v", err)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		for name, raw := range map[string]string{
			"not json":    `---`,
			"no resource": `{"event_type":"PAYMENT.CAPTURE.COMPLETED"}`,
			"no event":    `{"resource":{"id":"X"}}`,
			"no order id": `{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"status":"COMPLETED"}}`,
		} {
			_, err := ParseCallback([]byte(raw))
			var verr *types.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("%s: want ValidationError, got %v", name, err)
			}
		}
	})
}

func TestApprovalLink(t *testing.T) {
	order := &paypallib.Order{
		ID: "5O190127TN364715T",
		Links: []paypallib.Link{
			{Rel: "self", Href: "https://api.sandbox.paypal.com/v2/checkout/orders/5O190127TN364715T"},
			{Rel: "approve", Href: "https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T"},
			{Rel: "capture", Href: "https://api.sandbox.paypal.com/v2/checkout/orders/5O190127TN364715T/capture"},
		},
	}
	if got := approvalLink(order); got != "https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T" {
		t.Errorf("approvalLink = %q", got)
	}

	if got := approvalLink(&paypallib.Order{ID: "X"}); got != "" {
		t.Errorf("approvalLink on linkless order = %q, want empty", got)
	}
}
