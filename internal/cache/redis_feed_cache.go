package cache

import (
	"context"
	"time"

	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type RedisFeedCache struct {
	client *redis.Client
}

func NewRedisFeedCache(client *redis.Client) *RedisFeedCache {
	return &RedisFeedCache{client: client}
}

func (c *RedisFeedCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Warn("Failed to read feed cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false, err
	}
	if err := decode(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisFeedCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := encode(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, ttl).Err()
}

func (c *RedisFeedCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
