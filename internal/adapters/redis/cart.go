package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelgo/internal/domain"
)

// CartStore is the append-only session cart: a redis list per session,
// oldest item first. Adds never deduplicate.
type CartStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewCartStore(c *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{c: c, ttl: ttl}
}

func cartKey(sessionID string) string { return fmt.Sprintf("cart:%s", sessionID) }

func (s *CartStore) Add(ctx context.Context, sessionID string, item domain.CartLineItem) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	key := cartKey(sessionID)
	pipe := s.c.TxPipeline()
	pipe.RPush(ctx, key, b)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *CartStore) List(ctx context.Context, sessionID string) ([]domain.CartLineItem, error) {
	vals, err := s.c.LRange(ctx, cartKey(sessionID), 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.CartLineItem, 0, len(vals))
	for _, v := range vals {
		var item domain.CartLineItem
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
