package repository

import (
	"context"
	"encoding/json"
	"time"

	"pos-assistant/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

// categorySource is the backing lookup the cache reads through to.
type categorySource interface {
	CategoryNames(ctx context.Context, restaurantID string) ([]string, error)
}

// CategoryCache is a read-through redis cache for category names, used when
// building fallback-classifier context. Cache failures fall back to the
// database silently.
type CategoryCache struct {
	redis  *redis.Client
	source categorySource
	ttl    time.Duration
	logger logger.Logger
}

func NewCategoryCache(rdb *redis.Client, source categorySource, ttl time.Duration, log logger.Logger) *CategoryCache {
	return &CategoryCache{
		redis:  rdb,
		source: source,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"repository": "category-cache"}),
	}
}

func (c *CategoryCache) CategoryNames(ctx context.Context, restaurantID string) ([]string, error) {
	key := "categories:" + restaurantID

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var names []string
		if err := json.Unmarshal([]byte(val), &names); err == nil {
			return names, nil
		}
	}

	names, err := c.source.CategoryNames(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(names); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.WithError(err).Debug("category cache write failed", map[string]interface{}{
				"restaurantId": restaurantID,
			})
		}
	}
	return names, nil
}
