package pkg

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/widget-service/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings; the client is closed when the ping fails.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}
