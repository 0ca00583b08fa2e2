package bootstrap

import (
	"fmt"

	"lipapay/pkg/config"
	"lipapay/pkg/redis"
)

// SetupRedis initializes Redis
// Used for provider token caching and the rate limiter store.
func SetupRedis() {
	redis.ConnectRedis(
		fmt.Sprintf("%v:%v", config.GetString("redis.host"), config.GetString("redis.port")),
		config.GetString("redis.username"),
		config.GetString("redis.password"),
		config.GetInt("redis.database"),
	)
}
