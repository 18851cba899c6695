package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zorofrizzy/breatheBack/internal/domain"
)

// ZoneViewCache keeps the classified zone listing for a short TTL. Every zone
// mutation invalidates it, so a hit is never stale beyond the mutation path.
type ZoneViewCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewZoneViewCache(r *Redis, ttl time.Duration) *ZoneViewCache {
	return &ZoneViewCache{
		client: r.Client,
		key:    "zones:views",
		ttl:    ttl,
	}
}

// Get returns a nil slice on cache miss.
func (c *ZoneViewCache) Get(ctx context.Context) ([]domain.ZoneView, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var views []domain.ZoneView
	if err := json.Unmarshal(data, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *ZoneViewCache) Set(ctx context.Context, views []domain.ZoneView) error {
	b, err := json.Marshal(views)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, c.ttl).Err()
}

func (c *ZoneViewCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
