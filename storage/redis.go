package storage

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

func InitializeRedis() {
	// Get Redis URL from environment, fallback to localhost for development
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
		log.Println("⚠️  REDIS_URL not set, using localhost:6379 (development mode)")
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: "", // No password for now
		DB:       0,
	})

	log.Println("🔧 Redis initialized with address:", redisURL)
}

// CacheGet loads a cached JSON value into dest. Returns false on a miss,
// a decode failure, or when Redis is not reachable; callers treat every
// false as a miss and fall back to the database.
func CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if Redis == nil {
		return false
	}
	payload, err := Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		log.Println("cache decode failed for", key, ":", err)
		return false
	}
	return true
}

// CacheSet stores value as JSON under key with the given TTL.
func CacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if Redis == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	Redis.Set(ctx, key, payload, ttl)
}

// CacheDel drops keys after admin writes so public listings refresh.
func CacheDel(ctx context.Context, keys ...string) {
	if Redis == nil {
		return
	}
	Redis.Del(ctx, keys...)
}
