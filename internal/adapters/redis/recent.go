package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelgo/internal/domain"
)

// RecentStore keeps each session's recently-viewed activities in a redis
// list: newest first, deduplicated by activity id (remove-then-append),
// trimmed to domain.RecentLimit entries.
type RecentStore struct {
	c   *redis.Client
	ttl time.Duration
}

func NewRecentStore(c *redis.Client, ttl time.Duration) *RecentStore {
	return &RecentStore{c: c, ttl: ttl}
}

func recentKey(sessionID string) string { return fmt.Sprintf("recent:%s", sessionID) }

func (r *RecentStore) Push(ctx context.Context, sessionID string, item domain.RecentActivity) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	key := recentKey(sessionID)

	// Remove any prior entry for the same activity before pushing; the list
	// holds JSON blobs, so drop by scanning rather than LREM on the exact
	// payload (the summary fields may have changed since the last view).
	vals, err := r.c.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	for _, v := range vals {
		var prev domain.RecentActivity
		if json.Unmarshal([]byte(v), &prev) == nil && prev.ActivityID == item.ActivityID {
			if err := r.c.LRem(ctx, key, 1, v).Err(); err != nil {
				return err
			}
		}
	}

	pipe := r.c.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, int64(domain.RecentLimit-1))
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RecentStore) List(ctx context.Context, sessionID string) ([]domain.RecentActivity, error) {
	vals, err := r.c.LRange(ctx, recentKey(sessionID), 0, -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]domain.RecentActivity, 0, len(vals))
	for _, v := range vals {
		var item domain.RecentActivity
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			continue // skip corrupt entries
		}
		out = append(out, item)
	}
	return out, nil
}
