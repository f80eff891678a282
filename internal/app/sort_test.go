package app_test

import (
	"testing"

	"travelgo/internal/app"
	"travelgo/internal/domain"
)

func TestSortActivities_PriceLow(t *testing.T) {
	in := []domain.Activity{
		{Slug: "a", Price: 30},
		{Slug: "b", Price: 10},
		{Slug: "c", Price: 20},
	}
	got := app.SortActivities(in, domain.SortPriceLow)
	if !sameSlugs(slugs(got), []string{"b", "c", "a"}) {
		t.Fatalf("got %v", slugs(got))
	}
	// input untouched
	if in[0].Slug != "a" {
		t.Fatalf("input mutated: %v", slugs(in))
	}
}

func TestSortActivities_PriceHigh(t *testing.T) {
	in := []domain.Activity{{Slug: "a", Price: 30}, {Slug: "b", Price: 10}, {Slug: "c", Price: 20}}
	got := app.SortActivities(in, domain.SortPriceHigh)
	if !sameSlugs(slugs(got), []string{"a", "c", "b"}) {
		t.Fatalf("got %v", slugs(got))
	}
}

func TestSortActivities_Rating(t *testing.T) {
	in := []domain.Activity{{Slug: "a", Rating: 4.1}, {Slug: "b", Rating: 4.9}, {Slug: "c", Rating: 4.5}}
	got := app.SortActivities(in, domain.SortRating)
	if !sameSlugs(slugs(got), []string{"b", "c", "a"}) {
		t.Fatalf("got %v", slugs(got))
	}
}

func TestSortActivities_PopularTiesKeepInsertionOrder(t *testing.T) {
	in := []domain.Activity{
		{Slug: "a", ReviewCount: 100},
		{Slug: "b", ReviewCount: 100},
		{Slug: "c", ReviewCount: 100},
	}
	got := app.SortActivities(in, domain.SortPopular)
	if !sameSlugs(slugs(got), []string{"a", "b", "c"}) {
		t.Fatalf("stable sort must preserve tie order, got %v", slugs(got))
	}
}

func TestSortActivities_SingleElement(t *testing.T) {
	in := []domain.Activity{{Slug: "only"}}
	for _, k := range []domain.SortKey{domain.SortPopular, domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating} {
		got := app.SortActivities(in, k)
		if len(got) != 1 || got[0].Slug != "only" {
			t.Fatalf("%s: got %v", k, slugs(got))
		}
	}
}
