package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"lipapay/pkg/payment/types"
)

// fakeCache in-memory TokenCache recording the TTL it was handed
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	lastTTL time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

func (c *fakeCache) Set(key string, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	c.lastTTL = ttl
}

func testAdapter(serverURL string, cache types.TokenCache) *Adapter {
	return &Adapter{
		client: resty.New().
			SetBaseURL(serverURL).
			SetHeader("Content-Type", "application/json"),
		consumerKey:    "test-key",
		consumerSecret: "test-secret",
		shortCode:      "174379",
		passkey:        "test-passkey",
		callbackURL:    "http://example.test/callback/mpesa",
		cache:          cache,
	}
}

func TestPassword(t *testing.T) {
	got := Password("174379", "passkey", "20260827104500")
	want := base64.StdEncoding.EncodeToString([]byte("174379passkey20260827104500"))
	if got != want {
		t.Errorf("Password = %q, want %q", got, want)
	}
}

func TestAcquireToken(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/oauth/v1/generate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-key" || pass != "test-secret" {
			t.Error("missing or wrong basic auth")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"abc123","expires_in":"3599"}`))
	}))
	defer server.Close()

	cache := newFakeCache()
	a := testAdapter(server.URL, cache)

	token, err := a.AcquireToken(context.Background())
	if err != nil {
		t.Fatalf("AcquireToken: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q", token)
	}

	wantTTL := 3599*time.Second - tokenSafetyMargin
	if cache.lastTTL != wantTTL {
		t.Errorf("cache ttl = %v, want %v", cache.lastTTL, wantTTL)
	}

	// second call must come from the cache
	if _, err := a.AcquireToken(context.Background()); err != nil {
		t.Fatalf("cached AcquireToken: %v", err)
	}
	if hits != 1 {
		t.Errorf("token endpoint hit %d times, want 1", hits)
	}
}

func TestAcquireTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorCode":"401.003.01","errorMessage":"Invalid Access Token"}`))
	}))
	defer server.Close()

	a := testAdapter(server.URL, nil)

	_, err := a.AcquireToken(context.Background())
	var aerr *types.ProviderAuthError
	if !errors.As(err, &aerr) {
		t.Fatalf("want ProviderAuthError, got %v", err)
	}
}

func TestInitiate(t *testing.T) {
	var got stkPushRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mpesa/stkpush/v1/processrequest" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer token-1" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"MerchantRequestID": "29115-34620561-1",
			"CheckoutRequestID": "ws_CO_270820261045123456",
			"ResponseCode": "0",
			"ResponseDescription": "Success. Request accepted for processing",
			"CustomerMessage": "Success. Request accepted for processing"
		}`))
	}))
	defer server.Close()

	a := testAdapter(server.URL, nil)

	result, err := a.Initiate(context.Background(), "token-1", &types.InitiationRequest{
		Amount:           150.25,
		Currency:         "KES",
		PayerReference:   "254708374149",
		AccountReference: "INV-2026-0009",
		Description:      "order 42",
	})
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	if result.CorrelationID != "ws_CO_270820261045123456" {
		t.Errorf("correlation id = %q", result.CorrelationID)
	}

	// fractional amounts round up, the provider only takes whole units
	if got.Amount != 151 {
		t.Errorf("amount = %d, want 151", got.Amount)
	}
	if got.PhoneNumber != "254708374149" || got.PartyA != "254708374149" {
		t.Errorf("payer fields = %q / %q", got.PhoneNumber, got.PartyA)
	}
	if got.BusinessShortCode != "174379" || got.PartyB != "174379" {
		t.Errorf("short code fields = %q / %q", got.BusinessShortCode, got.PartyB)
	}
	if got.CallBackURL != "http://example.test/callback/mpesa" {
		t.Errorf("callback url = %q", got.CallBackURL)
	}
	if got.AccountReference != "INV-2026-0009" {
		t.Errorf("account reference = %q", got.AccountReference)
	}
	wantPassword := Password("174379", "test-passkey", got.Timestamp)
	if got.Password != wantPassword {
		t.Error("password does not match shortcode+passkey+timestamp digest")
	}
}

func TestInitiateRejected(t *testing.T) {
	t.Run("business rejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ResponseCode":"1","ResponseDescription":"The balance is insufficient"}`))
		}))
		defer server.Close()

		a := testAdapter(server.URL, nil)
		_, err := a.Initiate(context.Background(), "token-1", &types.InitiationRequest{Amount: 10, PayerReference: "254708374149"})

		var rerr *types.ProviderRejectedError
		if !errors.As(err, &rerr) {
			t.Fatalf("want ProviderRejectedError, got %v", err)
		}
		if rerr.Code != "1" {
			t.Errorf("code = %q", rerr.Code)
		}
	})

	t.Run("error envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"errorCode":"500.001.1001","errorMessage":"Unable to lock subscriber"}`))
		}))
		defer server.Close()

		a := testAdapter(server.URL, nil)
		_, err := a.Initiate(context.Background(), "token-1", &types.InitiationRequest{Amount: 10, PayerReference: "254708374149"})

		var rerr *types.ProviderRejectedError
		if !errors.As(err, &rerr) {
			t.Fatalf("want ProviderRejectedError, got %v", err)
		}
		if rerr.Code != "500.001.1001" {
			t.Errorf("code = %q", rerr.Code)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		a := testAdapter(server.URL, nil)
		_, err := a.Initiate(context.Background(), "token-1", &types.InitiationRequest{Amount: 10, PayerReference: "254708374149"})

		var rerr *types.ProviderRejectedError
		if !errors.As(err, &rerr) {
			t.Fatalf("want ProviderRejectedError, got %v", err)
		}
		if rerr.Code != "unreachable" {
			t.Errorf("code = %q", rerr.Code)
		}
	})
}

func TestParseCallback(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		raw := []byte(`{
			"Body": {
				"stkCallback": {
					"MerchantRequestID": "29115-34620561-1",
					"CheckoutRequestID": "ws_CO_270820261045123456",
					"ResultCode": 0,
					"ResultDesc": "The service request is processed successfully.",
					"CallbackMetadata": {
						"Item": [
							{"Name": "Amount", "Value": 150.00},
							{"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
							{"Name": "TransactionDate", "Value": 20260827104512},
							{"Name": "PhoneNumber", "Value": 254708374149}
						]
					}
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
		if event.CorrelationID != "ws_CO_270820261045123456" {
			t.Errorf("correlation id = %q", event.CorrelationID)
		}
		if event.ReceiptID != "NLJ7RT61SV" {
			t.Errorf("receipt id = %q", event.ReceiptID)
		}
		if event.Amount != 150 {
			t.Errorf("amount = %v", event.Amount)
		}
	})

	t.Run("failure", func(t *testing.T) {
		raw := []byte(`{
			"Body": {
				"stkCallback": {
					"MerchantRequestID": "29115-34620561-1",
					"CheckoutRequestID": "ws_CO_270820261045123456",
					"ResultCode": 1032,
					"ResultDesc": "Request cancelled by user"
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
		if event.ResultCode != 1032 {
			t.Errorf("result code = %d", event.ResultCode)
		}
		if event.ResultDesc != "Request cancelled by user" {
			t.Errorf("result desc = %q", event.ResultDesc)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		for name, raw := range map[string]string{
			"empty body":        `{"Body":{}}`,
			"no correlation id": `{"Body":{"stkCallback":{"ResultCode":0}}}`,
			"not json":          `<xml/>`,
		} {
			_, err := ParseCallback([]byte(raw))
			var verr *types.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("%s: want ValidationError, got %v", name, err)
			}
		}
	})
}
