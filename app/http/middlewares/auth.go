package middlewares

import (
	"github.com/gin-gonic/gin"

	"lipapay/app/repositories"
	"lipapay/pkg/response"
)

// AuthMerchant authenticates the calling merchant by API key and stashes
// the merchant id in the request context
func AuthMerchant() gin.HandlerFunc {
	merchants := repositories.NewMerchantRepository()

	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-Api-Key")
		if apiKey == "" {
			response.Abort401(c, "missing X-Api-Key header")
			return
		}

		m, err := merchants.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			response.ServerError(c, err)
			return
		}
		if m == nil {
			response.Abort401(c, "invalid API key")
			return
		}

		c.Set("merchant_id", m.ID)
		c.Next()
	}
}
