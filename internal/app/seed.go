package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"travelgo/internal/domain"
)

type SeedService struct {
	feed  domain.FeedClient
	repo  domain.CatalogRepository
	cache domain.Cache
}

func NewSeedService(f domain.FeedClient, r domain.CatalogRepository, cache domain.Cache) *SeedService {
	return &SeedService{feed: f, repo: r, cache: cache}
}

// SeedActivity fetches one activity from the feed and upserts it into the
// catalog. Known 404/401/403 responses are recorded as misses and skipped
// gracefully; anything else bubbles up. Caches covering the activity are
// invalidated after a successful upsert.
func (s *SeedService) SeedActivity(ctx context.Context, id int64) error {
	p, err := s.feed.GetActivity(ctx, id)
	if err != nil {
		low := strings.ToLower(err.Error())

		// 404: not in the feed -> record miss and stop gracefully.
		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogMiss(ctx, id, 404, "not found")
			return nil
		}

		// 401/403: unauthorized/forbidden/inactive listing -> miss, stop.
		if strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
			strings.Contains(low, "401") || strings.Contains(low, "unauthorized") {
			_ = s.repo.LogMiss(ctx, id, 403, "inactive")
			return nil
		}

		// Anything else is unexpected (network/5xx/JSON/etc.) -> bubble up.
		return err
	}

	a := mapActivity(p)
	if a.ID == 0 {
		a.ID = id
	}

	// Data-authoring errors from upstream: record and skip or repair, the
	// read path never re-validates these.
	if a.Slug == "" {
		log.Warn().Int64("id", id).Msg("feed payload missing slug, skipping")
		_ = s.repo.LogMiss(ctx, id, 422, "missing slug")
		return nil
	}
	for i := range a.Options {
		o := &a.Options[i]
		if o.OfferPrice != nil && *o.OfferPrice >= o.Price {
			log.Warn().
				Int64("activity", id).
				Int64("option", o.ID).
				Float64("offer", *o.OfferPrice).
				Float64("price", o.Price).
				Msg("offer price not below base price, dropping offer")
			_ = s.repo.LogMiss(ctx, id, 422, fmt.Sprintf("offer>=price option %d", o.ID))
			o.OfferPrice = nil
		}
	}

	if err := s.repo.UpsertActivity(ctx, a); err != nil {
		return fmt.Errorf("upsert activity %d: %w", id, err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, "activity:"+a.Slug)
		_ = s.cache.Del(ctx, "catalog:all")
	}
	return nil
}
