package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/config"
)

type Client struct {
	Client *redis.Client
}

// NewClient creates a new Redis client.
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// Get retrieves a value from Redis.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

// Set sets a value in Redis with expiration.
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// Delete removes keys from Redis.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.Client.Del(ctx, keys...).Err()
}

// GetConsumptionReport retrieves a cached consumption report for a period.
func (c *Client) GetConsumptionReport(ctx context.Context, period string) (string, error) {
	return c.Get(ctx, consumptionKey(period))
}

// SetConsumptionReport caches a serialized consumption report.
func (c *Client) SetConsumptionReport(ctx context.Context, period, payload string, expiration time.Duration) error {
	return c.Set(ctx, consumptionKey(period), payload, expiration)
}

// InvalidateConsumptionReports drops all cached consumption periods. Called
// after any visit creation so reports never serve stale totals.
func (c *Client) InvalidateConsumptionReports(ctx context.Context) error {
	return c.Delete(ctx, consumptionKey("week"), consumptionKey("month"))
}

func consumptionKey(period string) string {
	return fmt.Sprintf("report:consumption:%s", period)
}

// Close closes the Redis client.
func (c *Client) Close() error {
	return c.Client.Close()
}
