package routes

import (
	"lipapay/app/http/controllers/api/v1/payments"
	"lipapay/app/http/controllers/webhooks"
	"lipapay/app/http/middlewares"

	"github.com/gin-gonic/gin"
)

// route rate limits
const (
	// global: per IP per hour
	GlobalRateLimit = "30000-H"
	// payment initiation: per IP per hour, one outbound provider call each
	InitiatePaymentLimit = "300-H"
	// status polling: per IP per minute
	QueryPaymentLimit = "300-M"
	// provider callbacks: generous, providers burst on redelivery
	CallbackLimit = "10000-H"
)

// RegisterAPIRoutes registers all API routes
func RegisterAPIRoutes(r *gin.Engine) {
	v1 := r.Group("/v1")

	v1.Use(
		middlewares.Recovery(),
		middlewares.SecurityHeaders(),
		middlewares.LimitIP(GlobalRateLimit),
		middlewares.Cors(),
	)

	// merchant facing payment routes, API key authenticated
	paymentRoutes := v1.Group("/payments", middlewares.AuthMerchant())
	{
		pc := payments.NewPaymentsController()

		// initiate a payment
		// POST /v1/payments
		paymentRoutes.POST("",
			middlewares.LimitPerRoute(InitiatePaymentLimit),
			pc.Store,
		)

		// poll one transaction
		// GET /v1/payments/:id
		paymentRoutes.GET("/:id",
			middlewares.LimitPerRoute(QueryPaymentLimit),
			pc.Show,
		)
	}

	// provider callbacks, deliberately unauthenticated: providers do not
	// carry our credentials, the reconciler treats every payload as untrusted
	cc := webhooks.NewCallbackController()
	r.POST("/callback/:provider",
		middlewares.Recovery(),
		middlewares.LimitIP(CallbackLimit),
		cc.Handle,
	)
}
