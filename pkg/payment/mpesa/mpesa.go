// Package mpesa implements the mobile money adapter: OAuth client-credentials
// token grant and the STK push payment prompt, plus parsing of the
// asynchronous stkCallback result envelope.
package mpesa

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cast"

	"lipapay/app/models/credential"
	"lipapay/pkg/payment/types"
)

const (
	// SandboxBaseURL provider test environment
	SandboxBaseURL = "https://sandbox.safaricom.co.ke"
	// ProductionBaseURL provider live environment
	ProductionBaseURL = "https://api.safaricom.co.ke"

	// transactionType the STK push product we drive
	transactionType = "CustomerPayBillOnline"

	// tokenSafetyMargin shaved off the provider TTL before caching
	tokenSafetyMargin = 60 * time.Second
)

// Adapter drives the mobile money API for one merchant credential set
type Adapter struct {
	client         *resty.Client
	consumerKey    string
	consumerSecret string
	shortCode      string
	passkey        string
	callbackURL    string
	cache          types.TokenCache
}

// New builds an adapter from the merchant's active credential set.
// cache may be nil, tokens are then acquired on every initiation.
func New(cred *credential.ProviderCredential, cfg types.Config, cache types.TokenCache) *Adapter {
	baseURL := SandboxBaseURL
	if cred.IsProduction() {
		baseURL = ProductionBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Adapter{
		client:         client,
		consumerKey:    cred.ConsumerKey,
		consumerSecret: cred.ConsumerSecret,
		shortCode:      cred.ShortCode,
		passkey:        cred.Passkey,
		callbackURL:    cfg.PublicBaseURL + "/callback/" + string(types.ProviderMpesa),
		cache:          cache,
	}
}

// Provider implements types.Adapter
func (a *Adapter) Provider() types.Provider {
	return types.ProviderMpesa
}

// CallbackURL implements types.Adapter
func (a *Adapter) CallbackURL() string {
	return a.callbackURL
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// AcquireToken performs the basic-auth client-credentials grant. Tokens are
// cached per consumer key until shortly before the provider TTL runs out.
func (a *Adapter) AcquireToken(ctx context.Context) (string, error) {
	cacheKey := "mpesa:token:" + a.consumerKey
	if a.cache != nil {
		if token := a.cache.Get(cacheKey); token != "" {
			return token, nil
		}
	}

	var token tokenResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBasicAuth(a.consumerKey, a.consumerSecret).
		SetQueryParam("grant_type", "client_credentials").
		SetResult(&token).
		Get("/oauth/v1/generate")
	if err != nil {
		return "", &types.ProviderAuthError{Provider: types.ProviderMpesa, Err: err}
	}
	if resp.IsError() || token.AccessToken == "" {
		return "", &types.ProviderAuthError{
			Provider: types.ProviderMpesa,
			Err:      fmt.Errorf("token grant failed with status %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	if a.cache != nil {
		ttl := time.Duration(cast.ToInt(token.ExpiresIn))*time.Second - tokenSafetyMargin
		if ttl > 0 {
			a.cache.Set(cacheKey, token.AccessToken, ttl)
		}
	}
	return token.AccessToken, nil
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// Initiate submits an STK push. The provider prompts the payer's device and
// reports the outcome later through the callback URL; acceptance here only
// means the prompt was dispatched.
func (a *Adapter) Initiate(ctx context.Context, token string, req *types.InitiationRequest) (*types.InitiationResult, error) {
	timestamp := time.Now().Format("20060102150405")
	password := Password(a.shortCode, a.passkey, timestamp)

	// the provider only takes whole currency units
	amount := int64(math.Ceil(req.Amount))

	body := stkPushRequest{
		BusinessShortCode: a.shortCode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   transactionType,
		Amount:            amount,
		PartyA:            req.PayerReference,
		PartyB:            a.shortCode,
		PhoneNumber:       req.PayerReference,
		CallBackURL:       a.callbackURL,
		AccountReference:  req.AccountReference,
		TransactionDesc:   req.Description,
	}

	var result stkPushResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/mpesa/stkpush/v1/processrequest")
	if err != nil {
		// transport failure, includes the client timeout
		return nil, &types.ProviderRejectedError{
			Provider: types.ProviderMpesa,
			Code:     "unreachable",
			Message:  err.Error(),
		}
	}

	if resp.IsError() || result.ResponseCode != "0" {
		code := result.ResponseCode
		message := result.ResponseDescription
		if result.ErrorCode != "" {
			code = result.ErrorCode
			message = result.ErrorMessage
		}
		return nil, &types.ProviderRejectedError{
			Provider: types.ProviderMpesa,
			Code:     code,
			Message:  message,
		}
	}

	return &types.InitiationResult{
		CorrelationID:   result.CheckoutRequestID,
		CustomerMessage: result.CustomerMessage,
	}, nil
}

// Password builds the time-stamped initiation digest:
// base64(shortcode + passkey + timestamp), timestamp at second precision.
func Password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

type callbackEnvelope struct {
	Body struct {
		StkCallback *stkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type stkCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  *struct {
		Item []metadataItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

type metadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// ParseCallback validates the stkCallback envelope and applies the outcome
// rule: ResultCode 0 is success, everything else a failure carrying the
// provider description.
func ParseCallback(raw []byte) (*types.CallbackEvent, error) {
	var envelope callbackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, types.NewValidationError("mpesa callback is not valid JSON: %v", err)
	}

	cb := envelope.Body.StkCallback
	if cb == nil || cb.CheckoutRequestID == "" {
		return nil, types.NewValidationError("payload does not match the stkCallback envelope")
	}

	event := &types.CallbackEvent{
		Provider:      types.ProviderMpesa,
		CorrelationID: cb.CheckoutRequestID,
		Succeeded:     cb.ResultCode == 0,
		ResultCode:    cb.ResultCode,
		ResultDesc:    cb.ResultDesc,
	}

	if event.Succeeded && cb.CallbackMetadata != nil {
		for _, item := range cb.CallbackMetadata.Item {
			switch item.Name {
			case "MpesaReceiptNumber":
				event.ReceiptID = cast.ToString(item.Value)
			case "Amount":
				event.Amount = cast.ToFloat64(item.Value)
			}
		}
	}

	return event, nil
}

// ParseCallback implements types.Adapter
func (a *Adapter) ParseCallback(raw []byte) (*types.CallbackEvent, error) {
	return ParseCallback(raw)
}
