package app_test

import (
	"testing"
	"time"

	"travelgo/internal/app"
	"travelgo/internal/domain"
)

func date(s string) time.Time {
	t, _ := time.Parse(domain.ISODate, s)
	return t
}

func dptr(s string) *time.Time {
	t := date(s)
	return &t
}

func sampleCatalog() []domain.Activity {
	return []domain.Activity{
		{
			ID: 1, Slug: "eiffel-tower", Title: "Eiffel Tower",
			Category: "Attractions & Museums", Destination: "Paris",
			Location: "Paris, France", Description: "Skip-the-line summit access",
			Rating: 4.6, ReviewCount: 3200, Duration: "2 hours", Price: 45.99,
		},
		{
			ID: 2, Slug: "seine-cruise", Title: "Seine River Cruise",
			Category: "Cruises & Boat Tours", Destination: "Paris",
			Location: "Paris, France", Description: "Evening sightseeing cruise",
			Rating: 4.3, ReviewCount: 1800, Duration: "1 hour", Price: 19.5,
			AvailableFrom: dptr("2025-03-01"), AvailableTo: dptr("2025-03-31"),
		},
		{
			ID: 3, Slug: "tuscany-tour", Title: "Tuscany Wine Country",
			Category: "Day Trips", Destination: "Florence",
			Location: "Florence, Italy", Description: "Full day vineyard tour with tastings",
			Rating: 4.9, ReviewCount: 950, Duration: "2 Days", Price: 240,
			IsTourPackage: true,
		},
	}
}

func TestFilterActivities_DefaultsAreIdentity(t *testing.T) {
	cat := sampleCatalog()
	got := app.FilterActivities(cat, domain.NewFilterState(), app.SearchRefinements{})
	if len(got) != len(cat) {
		t.Fatalf("expected identity, got %d of %d", len(got), len(cat))
	}
	for i := range got {
		if got[i].Slug != cat[i].Slug {
			t.Fatalf("order changed at %d: %s", i, got[i].Slug)
		}
	}
}

func TestFilterActivities_EiffelScenario(t *testing.T) {
	fs := domain.NewFilterState()
	fs.SetPriceRange(0, 50)
	fs.SetRating(4)
	fs.SetCategory("Attractions")

	got := app.FilterActivities(sampleCatalog(), fs, app.SearchRefinements{})
	if len(got) != 1 || got[0].Slug != "eiffel-tower" {
		t.Fatalf("expected eiffel-tower only, got %+v", slugs(got))
	}

	fs.SetPriceRange(50, 100)
	got = app.FilterActivities(sampleCatalog(), fs, app.SearchRefinements{})
	if len(got) != 0 {
		t.Fatalf("expected empty, got %v", slugs(got))
	}
}

func TestFilterActivities_PriceBoundsInclusive(t *testing.T) {
	fs := domain.NewFilterState()
	fs.SetPriceRange(45.99, 45.99)
	got := app.FilterActivities(sampleCatalog(), fs, app.SearchRefinements{})
	if len(got) != 1 || got[0].Slug != "eiffel-tower" {
		t.Fatalf("boundary price should be retained, got %v", slugs(got))
	}
}

func TestFilterActivities_QueryMatchesAnyField(t *testing.T) {
	cases := map[string][]string{
		"CRUISE":   {"seine-cruise"},          // title
		"italy":    {"tuscany-tour"},          // location
		"museums":  {"eiffel-tower"},          // category
		"tastings": {"tuscany-tour"},          // description
		"paris":    {"eiffel-tower", "seine-cruise"},
		"zanzibar": {},
	}
	for q, want := range cases {
		got := app.FilterActivities(sampleCatalog(), domain.NewFilterState(), app.SearchRefinements{Query: q})
		if !sameSlugs(slugs(got), want) {
			t.Fatalf("query %q: got %v want %v", q, slugs(got), want)
		}
	}
}

func TestFilterActivities_TabsAreORed(t *testing.T) {
	ex := app.SearchRefinements{Tabs: []string{"Cruises", "Day Trips"}}
	got := app.FilterActivities(sampleCatalog(), domain.NewFilterState(), ex)
	if !sameSlugs(slugs(got), []string{"seine-cruise", "tuscany-tour"}) {
		t.Fatalf("got %v", slugs(got))
	}
}

func TestFilterActivities_CategoryBidirectional(t *testing.T) {
	// UI label longer than catalog value: either containing the other matches.
	items := []domain.Activity{{Slug: "a", Category: "Cruises"}}
	got := app.FilterActivities(items, domain.NewFilterState(), app.SearchRefinements{Tabs: []string{"Cruises & Boat Tours"}})
	if len(got) != 1 {
		t.Fatalf("label containing catalog value should match")
	}
}

func TestFilterActivities_Destination(t *testing.T) {
	fs := domain.NewFilterState()
	fs.SetDestination("florence")
	got := app.FilterActivities(sampleCatalog(), fs, app.SearchRefinements{})
	if !sameSlugs(slugs(got), []string{"tuscany-tour"}) {
		t.Fatalf("got %v", slugs(got))
	}
}

func TestFilterActivities_DurationBuckets(t *testing.T) {
	got := app.FilterActivities(sampleCatalog(), domain.NewFilterState(),
		app.SearchRefinements{DurationBuckets: []string{"1-4h"}})
	// "2 hours" => 120, "1 hour" => 60 (1-4h is [60,240))
	if !sameSlugs(slugs(got), []string{"eiffel-tower", "seine-cruise"}) {
		t.Fatalf("got %v", slugs(got))
	}

	got = app.FilterActivities(sampleCatalog(), domain.NewFilterState(),
		app.SearchRefinements{DurationBuckets: []string{"multi-day"}})
	if !sameSlugs(slugs(got), []string{"tuscany-tour"}) {
		t.Fatalf("got %v", slugs(got))
	}
}

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"2 hours", 120},
		{"1 hour", 60},
		{"45 min", 45},
		{"2 Days", 2880},
		{"1 day 2 hours", 1560},
		{"flexible", app.DefaultDurationMinutes}, // unparseable fallback
		{"", app.DefaultDurationMinutes},
	}
	for _, c := range cases {
		if got := app.DurationMinutes(c.in); got != c.want {
			t.Fatalf("%q: got %d want %d", c.in, got, c.want)
		}
	}
}

func TestFilterActivities_DateRangeOverlap(t *testing.T) {
	ex := app.SearchRefinements{DateFrom: dptr("2025-03-15"), DateTo: dptr("2025-03-20")}
	got := app.FilterActivities(sampleCatalog(), domain.NewFilterState(), ex)
	// seine-cruise window overlaps; the two without windows pass through.
	if len(got) != 3 {
		t.Fatalf("expected all 3, got %v", slugs(got))
	}

	ex = app.SearchRefinements{DateFrom: dptr("2025-04-01"), DateTo: dptr("2025-04-05")}
	got = app.FilterActivities(sampleCatalog(), domain.NewFilterState(), ex)
	// seine-cruise window ends 2025-03-31: excluded; windowless ones remain.
	if !sameSlugs(slugs(got), []string{"eiffel-tower", "tuscany-tour"}) {
		t.Fatalf("got %v", slugs(got))
	}
}

func slugs(items []domain.Activity) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Slug)
	}
	return out
}

func sameSlugs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
