package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "travelgo/internal/adapters/redis"
	"travelgo/internal/domain"
)

func TestCartStore_AppendOnly(t *testing.T) {
	mr := miniredis.RunT(t)
	s := redisad.NewCartStore(redisad.NewClient(mr.Addr(), "", 0), time.Hour)
	ctx := context.Background()

	item := domain.CartLineItem{ID: "li-1", ActivityID: 7, ActivityTitle: "Eiffel Tower", Total: 240}

	// same payload twice: both survive, adds never deduplicate
	if err := s.Add(ctx, "s1", item); err != nil {
		t.Fatalf("err: %v", err)
	}
	item.ID = "li-2"
	if err := s.Add(ctx, "s1", item); err != nil {
		t.Fatalf("err: %v", err)
	}

	got, err := s.List(ctx, "s1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	// oldest first
	if got[0].ID != "li-1" || got[1].ID != "li-2" {
		t.Fatalf("expected insertion order, got %+v", got)
	}
	if got[0].Total != 240 {
		t.Fatalf("round-trip lost total: %+v", got[0])
	}
}

func TestCartStore_EmptySession(t *testing.T) {
	mr := miniredis.RunT(t)
	s := redisad.NewCartStore(redisad.NewClient(mr.Addr(), "", 0), time.Hour)

	got, err := s.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty cart, got %d", len(got))
	}
}
