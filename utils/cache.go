// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"campusnews/config"

	"github.com/go-redis/redis/v8"
)

// DeviceCacheClient caches channel subscriber device tokens.
var DeviceCacheClient *redis.Client

// InitDeviceCache initializes the Redis client for the device-token cache.
func InitDeviceCache() {
	DeviceCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDeviceDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DeviceCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Device Cache): %v", err)
	}
}

// GetDeviceCacheClient returns the Redis client for the device-token cache.
func GetDeviceCacheClient() *redis.Client {
	if DeviceCacheClient == nil {
		InitDeviceCache()
	}
	return DeviceCacheClient
}
