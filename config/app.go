// Package config site configuration
package config

import "lipapay/pkg/config"

// Initialize forces the package to load so every init below registers
func Initialize() {}

func init() {
	config.Add("app", func() map[string]interface{} {
		return map[string]interface{}{

			// application name
			"name": config.Env("APP_NAME", "LipaPay"),

			// current environment, one of local, stage, production, test
			"env": config.Env("APP_ENV", "production"),

			// debug mode
			"debug": config.Env("APP_DEBUG", false),

			// HTTP listen port
			"port": config.Env("APP_PORT", "3000"),

			// timezone, used by log timestamps and DSN
			"timezone": config.Env("TIMEZONE", "Africa/Nairobi"),

			// public base URL, providers deliver callbacks here
			"url": config.Env("APP_URL", "http://localhost:3000"),
		}
	})
}
