package redisad_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "travelgo/internal/adapters/redis"
	"travelgo/internal/domain"
)

func newStore(t *testing.T) *redisad.RecentStore {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewRecentStore(redisad.NewClient(mr.Addr(), "", 0), time.Hour)
}

func TestRecentStore_NewestFirst(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: 1, Slug: "one"})
	_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: 2, Slug: "two"})

	got, err := s.List(ctx, "s1")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 2 || got[0].Slug != "two" || got[1].Slug != "one" {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestRecentStore_DedupByID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: 1, Slug: "one"})
	_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: 2, Slug: "two"})
	// re-view activity 1 with changed fields: old entry removed, new on top
	_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: 1, Slug: "one", Price: 99})

	got, _ := s.List(ctx, "s1")
	if len(got) != 2 {
		t.Fatalf("expected dedup to 2 entries, got %d", len(got))
	}
	if got[0].ActivityID != 1 || got[0].Price != 99 {
		t.Fatalf("expected refreshed entry on top, got %+v", got[0])
	}
}

func TestRecentStore_CapEvictsOldest(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for i := 1; i <= domain.RecentLimit+3; i++ {
		_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: int64(i), Slug: fmt.Sprintf("a%d", i)})
	}

	got, _ := s.List(ctx, "s1")
	if len(got) != domain.RecentLimit {
		t.Fatalf("expected cap %d, got %d", domain.RecentLimit, len(got))
	}
	if got[0].ActivityID != int64(domain.RecentLimit+3) {
		t.Fatalf("newest must survive, got %+v", got[0])
	}
	for _, it := range got {
		if it.ActivityID <= 3 {
			t.Fatalf("oldest entries must be evicted, found %d", it.ActivityID)
		}
	}
}

func TestRecentStore_SessionsAreIsolated(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_ = s.Push(ctx, "s1", domain.RecentActivity{ActivityID: 1})
	_ = s.Push(ctx, "s2", domain.RecentActivity{ActivityID: 2})

	got, _ := s.List(ctx, "s1")
	if len(got) != 1 || got[0].ActivityID != 1 {
		t.Fatalf("sessions leaked: %+v", got)
	}
}
