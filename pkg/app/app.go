// Package app provides application level helper functions
package app

import (
	"time"

	"lipapay/pkg/config"
)

// IsLocal reports whether the app runs in the local environment
func IsLocal() bool {
	return config.Get("app.env") == "local"
}

// IsProduction reports whether the app runs in production
func IsProduction() bool {
	return config.Get("app.env") == "production"
}

// IsTesting reports whether the app runs under the testing environment
func IsTesting() bool {
	return config.Get("app.env") == "testing"
}

// TimenowInTimezone returns the current time in the configured app.timezone
func TimenowInTimezone() time.Time {
	location, _ := time.LoadLocation(config.GetString("app.timezone"))
	return time.Now().In(location)
}

// URL prepends the configured public base URL to a path
func URL(path string) string {
	return config.Get("app.url") + path
}
