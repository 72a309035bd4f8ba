package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 직렬화된 값과 만료 시각
type cacheItem struct {
	Data      []byte
	ExpiresAt time.Time
}

// LocalFeedCache 프로세스 내 LRU 캐시 (Redis 미사용 시)
type LocalFeedCache struct {
	lruCache *lru.Cache[string, cacheItem]
	now      func() time.Time
}

func NewLocalFeedCache(size int) (*LocalFeedCache, error) {
	if size <= 0 {
		size = 1000
	}
	l, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create LRU cache: %w", err)
	}
	return &LocalFeedCache{lruCache: l, now: time.Now}, nil
}

func (c *LocalFeedCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return false, nil
	}

	if c.now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return false, nil
	}

	if err := decode(val.Data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *LocalFeedCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := encode(value)
	if err != nil {
		return err
	}
	c.lruCache.Add(key, cacheItem{Data: b, ExpiresAt: c.now().Add(ttl)})
	return nil
}

func (c *LocalFeedCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.lruCache.Remove(key)
	}
	return nil
}

func (c *LocalFeedCache) Len() int {
	return c.lruCache.Len()
}
