// Package webhooks receives the provider initiated callback deliveries
package webhooks

import (
	"github.com/gin-gonic/gin"

	"lipapay/app/repositories"
	"lipapay/pkg/logger"
	"lipapay/pkg/payment"
	"lipapay/pkg/payment/types"
	"lipapay/pkg/response"
)

// CallbackController terminates the provider callback URLs
type CallbackController struct {
	reconciler *payment.Reconciler
}

// NewCallbackController wires the controller with the reconciler service
func NewCallbackController() *CallbackController {
	merchants := repositories.NewMerchantRepository()

	reconciler := payment.NewReconciler(
		repositories.NewTransactionRepository(),
		repositories.NewSubscriptionRepository(),
		repositories.NewInvoiceRepository(),
		merchants,
		logger.Logger,
	)

	return &CallbackController{
		reconciler: reconciler,
	}
}

// Handle processes one callback delivery.
// POST /callback/:provider
//
// The response is 200 no matter what happens internally: providers treat
// anything else as an invitation to redeliver, and redelivery of a processed
// callback is already a safe no-op for us.
func (cc *CallbackController) Handle(c *gin.Context) {
	provider := types.Provider(c.Param("provider"))

	raw, err := c.GetRawData()
	switch {
	case err != nil:
		logger.WarnString("Callback", string(provider), "unreadable request body: "+err.Error())
	case !provider.Valid():
		logger.WarnString("Callback", string(provider), "callback for unknown provider")
	default:
		cc.reconciler.Reconcile(c.Request.Context(), provider, raw)
	}

	// ack in the shape each provider expects
	if provider == types.ProviderMpesa {
		response.JSON(c, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
		return
	}
	response.JSON(c, gin.H{"status": "ok"})
}
