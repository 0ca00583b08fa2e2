package middlewares

import (
	"sync"
	"time"

	"lipapay/pkg/app"
	"lipapay/pkg/limiter"
	"lipapay/pkg/logger"
	"lipapay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"golang.org/x/time/rate"
)

const (
	// DefaultBurst default burst size
	DefaultBurst = 100
	// DefaultTimeout default wait timeout
	DefaultTimeout = 50 * time.Millisecond
)

var (
	// concurrency safe cache of per-key limiters
	limiters sync.Map
	// per-key last cleanup timestamps
	lastCleanup sync.Map
)

// RateLimitConfig rate limit settings
type RateLimitConfig struct {
	Limit   string
	Burst   int
	Timeout time.Duration
}

// LimitIP global per-IP rate limit middleware.
//
// Supported limit formats:
// - 5 reqs/second:   "5-S"
// - 10 reqs/minute:  "10-M"
// - 1000 reqs/hour:  "1000-H"
// - 2000 reqs/day:   "2000-D"
func LimitIP(limit string) gin.HandlerFunc {
	// tests get an effectively unlimited quota
	if app.IsTesting() {
		limit = "1000000-H"
	}

	config := RateLimitConfig{
		Limit:   limit,
		Burst:   DefaultBurst,
		Timeout: DefaultTimeout,
	}

	return createLimiterHandler(func(c *gin.Context) string {
		return limiter.GetKeyIP(c)
	}, config)
}

// LimitPerRoute rate limit keyed on IP plus route path
func LimitPerRoute(limit string) gin.HandlerFunc {
	if app.IsTesting() {
		limit = "1000000-H"
	}

	config := RateLimitConfig{
		Limit:   limit,
		Burst:   DefaultBurst,
		Timeout: DefaultTimeout,
	}

	return createLimiterHandler(func(c *gin.Context) string {
		return limiter.GetKeyRouteWithIP(c)
	}, config)
}

// createLimiterHandler builds the handler around a key function
func createLimiterHandler(keyFunc func(*gin.Context) string, config RateLimitConfig) gin.HandlerFunc {
	// expired limiters are reaped periodically
	go cleanupLimiters()

	return func(c *gin.Context) {
		key := keyFunc(c)

		limiterObj, err := getLimiter(key, config)
		if err != nil {
			logger.ErrorString("Limiter", "Create", err.Error())
			// degrade open, let the request through
			c.Next()
			return
		}

		if !limiterObj.Allow() {
			response.JSON(c, gin.H{
				"code":    429,
				"message": "too many requests, slow down",
				"error":   "Too Many Requests",
			})
			c.Abort()
			return
		}

		setRateLimitHeaders(c, limiterObj)

		c.Next()
	}
}

// getLimiter fetches or creates the limiter for a key
func getLimiter(key string, config RateLimitConfig) (*rate.Limiter, error) {
	if lim, exists := limiters.Load(key); exists {
		return lim.(*rate.Limiter), nil
	}

	r, err := limiter.ParseLimit(config.Limit)
	if err != nil {
		return nil, err
	}

	lim := rate.NewLimiter(rate.Limit(r.Rate), config.Burst)

	// concurrency safe store, first writer wins
	actual, _ := limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter), nil
}

// setRateLimitHeaders sets the RateLimit response headers
func setRateLimitHeaders(c *gin.Context, lim *rate.Limiter) {
	c.Header("X-RateLimit-Limit", cast.ToString(lim.Limit()))
	c.Header("X-RateLimit-Remaining", cast.ToString(lim.Tokens()))
	c.Header("X-RateLimit-Reset", cast.ToString(time.Now().Add(time.Second).Unix()))
}

// cleanupLimiters periodically drops limiters idle for over 24 hours
func cleanupLimiters() {
	ticker := time.NewTicker(1 * time.Hour)
	for range ticker.C {
		now := time.Now()
		limiters.Range(func(key, value interface{}) bool {
			lastAccess, _ := lastCleanup.Load(key)
			if lastAccess == nil {
				lastCleanup.Store(key, now)
				return true
			}

			if now.Sub(lastAccess.(time.Time)) > 24*time.Hour {
				limiters.Delete(key)
				lastCleanup.Delete(key)
			}
			return true
		})
	}
}
