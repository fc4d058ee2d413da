package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/lakshmanbhukya/threadly-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Message rate limiting and thread caching will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// CheckMessageRate increments the per-user send counter and reports whether
// the user is still under the limit for the window. Fails open when Redis
// is unavailable.
func CheckMessageRate(userID string, limit int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("msg_rate:%s", userID)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, window)
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}

// Caching
func CacheSet(key string, value interface{}, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, payload, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
