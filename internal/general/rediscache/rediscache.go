package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ride-estimates/internal/general/config"
	"ride-estimates/internal/general/logger"

	"github.com/go-redis/redis/v8"
)

// Client wraps a Redis connection with JSON marshalling, used as the
// geocode result cache.
type Client struct {
	client *redis.Client
	log    *logger.Logger
}

// Connect opens a Redis connection and verifies it with a bounded ping.
func Connect(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + strconv.Itoa(cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(ctx, "redis_connected", "Connected to Redis", map[string]any{
		"host": cfg.Redis.Host,
		"port": cfg.Redis.Port,
		"db":   cfg.Redis.DB,
	})

	return &Client{client: rdb, log: log}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Set stores a JSON-encoded value under key with a TTL.
func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

// Get loads the value stored under key into dest. A missing key is an error.
func (c *Client) Get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key %s not found", key)
		}
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value for key %s: %w", key, err)
	}

	return nil
}

// GenerateKey joins a prefix and an identifier into a cache key.
func GenerateKey(prefix, id string) string {
	return prefix + ":" + id
}
