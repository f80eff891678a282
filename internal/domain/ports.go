package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type CatalogRepository interface {
	// Write paths (seeder)
	UpsertActivity(ctx context.Context, a Activity) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error

	// Read paths
	GetActivity(ctx context.Context, slug string) (Activity, error)
	ListActivities(ctx context.Context) ([]Activity, error)
}

// FeedClient pulls raw activity payloads from the upstream catalog feed.
type FeedClient interface {
	ListActivityIDs(ctx context.Context) ([]int64, error)
	GetActivity(ctx context.Context, id int64) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// CartSink receives composed line items, append-only per session.
type CartSink interface {
	Add(ctx context.Context, sessionID string, item CartLineItem) error
	List(ctx context.Context, sessionID string) ([]CartLineItem, error)
}

// RecentStore keeps the last-viewed activity summaries per session,
// deduplicated by activity id and capped at RecentLimit entries.
type RecentStore interface {
	Push(ctx context.Context, sessionID string, item RecentActivity) error
	List(ctx context.Context, sessionID string) ([]RecentActivity, error)
}

const RecentLimit = 10
