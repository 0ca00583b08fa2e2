// Package redis provides the Redis connection and small operation helpers.
// The single shared client backs the rate limiter store and the provider
// token cache.
package redis

import (
	"context"
	"sync"
	"time"

	"lipapay/pkg/logger"

	redis "github.com/redis/go-redis/v9"
)

// RedisClient wraps the go-redis client together with its context
type RedisClient struct {
	Client  *redis.Client
	Context context.Context
}

// once ensures the client is initialized a single time
var once sync.Once

// Redis global client instance
var Redis *RedisClient

// ConnectRedis initializes the global Redis instance
func ConnectRedis(address string, username string, password string, db int) {
	once.Do(func() {
		Redis = NewClient(address, username, password, db)
	})
}

// NewClient creates a new Redis client
func NewClient(address string, username string, password string, db int) *RedisClient {
	rds := &RedisClient{}
	rds.Context = context.Background()

	rds.Client = redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := rds.Ping(); err != nil {
		logger.ErrorString("Redis", "Connect", err.Error())
		panic(err)
	}

	return rds
}

// Ping checks the connection
func (rds *RedisClient) Ping() error {
	_, err := rds.Client.Ping(rds.Context).Result()
	return err
}

// Set stores a key with expiration, zero expiration means no TTL
func (rds *RedisClient) Set(key string, value interface{}, expiration time.Duration) bool {
	if err := rds.Client.Set(rds.Context, key, value, expiration).Err(); err != nil {
		logger.ErrorString("Redis", "Set", err.Error())
		return false
	}
	return true
}

// Get retrieves a key, empty string when missing or on error
func (rds *RedisClient) Get(key string) string {
	result, err := rds.Client.Get(rds.Context, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.ErrorString("Redis", "Get", err.Error())
		}
		return ""
	}
	return result
}

// Has reports whether a key exists
func (rds *RedisClient) Has(key string) bool {
	_, err := rds.Client.Get(rds.Context, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.ErrorString("Redis", "Has", err.Error())
		}
		return false
	}
	return true
}

// Del deletes one or more keys
func (rds *RedisClient) Del(keys ...string) bool {
	if err := rds.Client.Del(rds.Context, keys...).Err(); err != nil {
		logger.ErrorString("Redis", "Del", err.Error())
		return false
	}
	return true
}

// FlushDB clears the current database, used by tests
func (rds *RedisClient) FlushDB() bool {
	if err := rds.Client.FlushDB(rds.Context).Err(); err != nil {
		logger.ErrorString("Redis", "FlushDB", err.Error())
		return false
	}
	return true
}
