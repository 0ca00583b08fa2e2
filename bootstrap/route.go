package bootstrap

import (
	"net/http"
	"strings"

	"lipapay/app/http/middlewares"
	"lipapay/routes"

	"github.com/gin-gonic/gin"
)

// SetupRoute initializes routing
// Registers the global middlewares, the API routes and the 404 handler.
func SetupRoute(router *gin.Engine) {
	registerGlobalMiddleWare(router)

	routes.RegisterAPIRoutes(router)

	setup404Handler(router)
}

// registerGlobalMiddleWare registers middlewares applied to every request
func registerGlobalMiddleWare(router *gin.Engine) {
	router.Use(
		middlewares.Logger(),
		middlewares.Recovery(),
	)
}

// setup404Handler configures the 404 handler
func setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		acceptString := c.Request.Header.Get("Accept")

		if strings.Contains(acceptString, "text/html") {
			c.String(http.StatusNotFound, "404 Not Found")
		} else {
			c.JSON(http.StatusNotFound, gin.H{
				"error_code":    404,
				"error_message": "Route not defined. Check the URL and the request method.",
			})
		}
	})
}
