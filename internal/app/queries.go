package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travelgo/internal/domain"
)

type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	recent   domain.RecentStore
	cacheTTL time.Duration
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, rs domain.RecentStore, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, recent: rs, cacheTTL: ttl}
}

func (s *QueryService) GetActivity(ctx context.Context, slug string) (domain.Activity, error) {
	key := fmt.Sprintf("activity:%s", slug)
	var a domain.Activity
	if ok, _ := s.cache.Get(ctx, key, &a); ok {
		return a, nil
	}
	a, err := s.repo.GetActivity(ctx, slug)
	if err != nil {
		return domain.Activity{}, err
	}
	_ = s.cache.Set(ctx, key, a, int(s.cacheTTL.Seconds()))
	return a, nil
}

// Search runs the filter engine and sort stage over the full catalog. The
// catalog is small and cached whole; filtering happens in memory.
func (s *QueryService) Search(ctx context.Context, fs domain.FilterState, ex SearchRefinements) ([]domain.Activity, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	return SortActivities(FilterActivities(catalog, fs, ex), fs.SortBy), nil
}

func (s *QueryService) catalog(ctx context.Context) ([]domain.Activity, error) {
	const key = "catalog:all"
	var items []domain.Activity
	if ok, _ := s.cache.Get(ctx, key, &items); ok {
		return items, nil
	}
	items, err := s.repo.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached value through
	// the shared backing array
	cp := make([]domain.Activity, len(items))
	copy(cp, items)
	// size guard
	if b, _ := json.Marshal(cp); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	}
	return items, nil
}

// RecordView pushes a denormalized summary onto the session's
// recently-viewed list. Best effort; a failed push never fails the read.
func (s *QueryService) RecordView(ctx context.Context, sessionID string, a domain.Activity) {
	if s.recent == nil || sessionID == "" {
		return
	}
	_ = s.recent.Push(ctx, sessionID, domain.RecentActivity{
		ActivityID:  a.ID,
		Slug:        a.Slug,
		Title:       a.Title,
		Image:       a.Image,
		Destination: a.Destination,
		Price:       a.Price,
		Rating:      a.Rating,
	})
}

func (s *QueryService) RecentlyViewed(ctx context.Context, sessionID string) ([]domain.RecentActivity, error) {
	if s.recent == nil {
		return nil, nil
	}
	return s.recent.List(ctx, sessionID)
}
