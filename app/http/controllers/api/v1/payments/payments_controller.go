// Package payments exposes the merchant facing payment endpoints
package payments

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"lipapay/app/repositories"
	"lipapay/app/requests"
	"lipapay/pkg/config"
	"lipapay/pkg/logger"
	"lipapay/pkg/payment"
	"lipapay/pkg/payment/types"
	"lipapay/pkg/redis"
	"lipapay/pkg/response"
)

// PaymentsController handles payment initiation and status reads
type PaymentsController struct {
	initiator    *payment.Initiator
	transactions *repositories.TransactionRepository
}

// NewPaymentsController wires the controller with its stores and the
// initiator service
func NewPaymentsController() *PaymentsController {
	cfg := types.Config{
		PublicBaseURL: config.Get("app.url"),
		SiteURL:       config.Get("payment.site_url"),
		Timeout:       time.Duration(config.GetInt("payment.timeout", 30)) * time.Second,
	}

	transactions := repositories.NewTransactionRepository()
	merchants := repositories.NewMerchantRepository()

	initiator := payment.NewInitiator(
		cfg,
		repositories.NewCredentialRepository(),
		transactions,
		repositories.NewSubscriptionRepository(),
		repositories.NewInvoiceRepository(),
		merchants,
		repositories.NewLinkRepository(),
		redisTokenCache{},
		logger.Logger,
	)

	return &PaymentsController{
		initiator:    initiator,
		transactions: transactions,
	}
}

// Store initiates a payment.
// POST /v1/payments
func (pc *PaymentsController) Store(c *gin.Context) {
	req, err := requests.ValidateInitiatePayment(c)
	if err != nil {
		response.BadRequest(c, err, "invalid request")
		return
	}

	result, err := pc.initiator.Initiate(c.Request.Context(), &types.InitiateRequest{
		MerchantID:     c.GetUint64("merchant_id"),
		Amount:         req.Amount,
		Currency:       req.Currency,
		PayerReference: req.PayerReference,
		Provider:       types.Provider(req.Provider),
		InvoiceID:      req.InvoiceID,
		LinkSlug:       req.LinkSlug,
		Plan:           req.Plan,
		Description:    req.Description,
	})
	if err != nil {
		abortInitiateError(c, err)
		return
	}

	response.Data(c, result)
}

// Show reads one transaction, lets the merchant UI poll for the outcome.
// GET /v1/payments/:id
func (pc *PaymentsController) Show(c *gin.Context) {
	id := cast.ToUint64(c.Param("id"))
	if id == 0 {
		response.Abort400(c, "invalid transaction id")
		return
	}

	tx, err := pc.transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if tx == nil || tx.MerchantID != c.GetUint64("merchant_id") {
		response.Abort404(c)
		return
	}

	response.Data(c, tx)
}

// abortInitiateError maps the payment error taxonomy onto HTTP statuses
func abortInitiateError(c *gin.Context, err error) {
	var validationErr *types.ValidationError
	var credentialErr *types.CredentialError
	var rejectedErr *types.ProviderRejectedError
	var authErr *types.ProviderAuthError

	switch {
	case errors.As(err, &validationErr):
		response.Abort400(c, validationErr.Message)
	case errors.As(err, &credentialErr):
		response.Abort400(c, credentialErr.Message)
	case errors.As(err, &rejectedErr):
		// surface the provider's own message, the caller can act on it
		response.Abort400(c, rejectedErr.Message)
	case errors.As(err, &authErr):
		logger.ErrorString("Payment", "ProviderAuth", err.Error())
		response.Abort500(c, "payment provider is unavailable")
	default:
		response.ServerError(c, err)
	}
}

// redisTokenCache adapts the shared redis client to types.TokenCache
type redisTokenCache struct{}

func (redisTokenCache) Get(key string) string {
	if redis.Redis == nil {
		return ""
	}
	return redis.Redis.Get(key)
}

func (redisTokenCache) Set(key string, value string, ttl time.Duration) {
	if redis.Redis == nil {
		return
	}
	redis.Redis.Set(key, value, ttl)
}
