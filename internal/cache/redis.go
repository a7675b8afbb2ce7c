package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/JuliaBars/yatube-back/internal/config"
	"github.com/JuliaBars/yatube-back/internal/logs"
)

// Redis backs the page cache with a shared Redis instance so the cache
// window holds across replicas.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logs.LogJSON("ERROR", "Redis cache read failed", map[string]interface{}{
				"error": err.Error(),
				"key":   key,
			})
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logs.LogJSON("ERROR", "Redis cache write failed", map[string]interface{}{
			"error": err.Error(),
			"key":   key,
		})
	}
}

// NewRedisClient builds a client from REDIS_URL when present, otherwise from
// host/port/password. Returns nil when Redis is not configured or
// unreachable; callers fall back to the in-memory cache.
func NewRedisClient(cfg *config.Config) *redis.Client {
	var client *redis.Client

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logs.LogJSON("WARN", "Invalid REDIS_URL", map[string]interface{}{"error": err.Error()})
			return nil
		}
		client = redis.NewClient(opt)
	} else if cfg.RedisHost != "" {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       0,
		})
	} else {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logs.LogJSON("WARN", "Redis unreachable, using in-memory cache", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return client
}
