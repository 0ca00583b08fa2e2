// Package limiter handles rate limiting logic
package limiter

import (
	"fmt"
	"strconv"
	"strings"

	"lipapay/pkg/config"
	"lipapay/pkg/logger"
	"lipapay/pkg/redis"

	"github.com/gin-gonic/gin"
	limiterlib "github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Rate holds a parsed per-second rate
type Rate struct {
	Rate float64
}

// ParseLimit parses a limit string.
// Supported formats: "5-S", "10-M", "1000-H", "2000-D"
func ParseLimit(limit string) (*Rate, error) {
	// "5-S" becomes the "5/S" form limiterlib understands
	formatted := strings.ReplaceAll(limit, "-", "/")

	_, err := limiterlib.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid limit format: %w", err)
	}

	parts := strings.Split(limit, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid limit format: %s", limit)
	}

	value, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %s", parts[0])
	}

	var ratePerSecond float64
	switch strings.ToUpper(parts[1]) {
	case "S":
		ratePerSecond = value
	case "M":
		ratePerSecond = value / 60.0
	case "H":
		ratePerSecond = value / 3600.0
	case "D":
		ratePerSecond = value / 86400.0
	default:
		return nil, fmt.Errorf("invalid time unit: %s", parts[1])
	}

	return &Rate{Rate: ratePerSecond}, nil
}

// GetKeyIP limiter key based on client IP
func GetKeyIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetKeyRouteWithIP limiter key based on route plus IP, for per-route limits
func GetKeyRouteWithIP(c *gin.Context) string {
	return routeToKeyString(c.FullPath()) + c.ClientIP()
}

// CheckRate checks whether the request exceeds its quota
func CheckRate(c *gin.Context, key string, formatted string) (limiterlib.Context, error) {

	var context limiterlib.Context
	rate, err := limiterlib.NewRateFromFormatted(formatted)
	if err != nil {
		logger.LogIf(err)
		return context, err
	}

	// backed by the shared redis.Redis client
	store, err := sredis.NewStoreWithOptions(redis.Redis.Client, limiterlib.StoreOptions{
		// prefix keeps the limiter keys tidy inside redis
		Prefix: config.GetString("app.name") + ":limiter",
	})
	if err != nil {
		logger.LogIf(err)
		return context, err
	}

	limiterObj := limiterlib.New(store, rate)

	if c.GetBool("limiter-once") {
		// Peek() reads the result without counting the visit
		return limiterObj.Peek(c, key)
	} else {
		// when several route groups stack LimitIP, only count the visit once
		c.Set("limiter-once", true)

		// Get() reads the result and counts the visit
		return limiterObj.Get(c, key)
	}
}

// routeToKeyString normalizes a route path into a key fragment
func routeToKeyString(routeName string) string {
	routeName = strings.ReplaceAll(routeName, "/", "-")
	routeName = strings.ReplaceAll(routeName, ":", "_")
	return routeName
}
