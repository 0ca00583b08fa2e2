package config

import (
	"lipapay/pkg/config"
)

func init() {
	config.Add("payment", func() map[string]interface{} {
		return map[string]interface{}{
			// where buyers land after provider-hosted approval flows
			"site_url": config.Env("PAYMENT_SITE_URL", "http://localhost:3000"),

			// outbound HTTP timeout for provider calls, in seconds
			"timeout": config.Env("PAYMENT_TIMEOUT", 30),
		}
	})
}
