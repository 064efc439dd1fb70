// README: Redis snapshot cache for the assembled rate table.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "sgtri:rates:v1"

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: client, ttl: ttl}
}

// Get returns the cached table, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context) (*Table, error) {
	data, err := c.redis.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rates cache: get: %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("rates cache: decode: %w", err)
	}
	return &t, nil
}

func (c *Cache) Put(ctx context.Context, t *Table) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("rates cache: encode: %w", err)
	}
	if err := c.redis.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("rates cache: set: %w", err)
	}
	return nil
}
