package app_test

import (
	"testing"

	"travelgo/internal/app"
	"travelgo/internal/domain"
)

func morningAfternoon() []domain.Option {
	return []domain.Option{
		{ID: 1, Title: "Morning", AvailableDates: []string{"2025-03-10", "2025-03-12"}},
		{ID: 2, Title: "Afternoon", AvailableDates: []string{"2025-03-11"}},
	}
}

func TestResolveOptions_ByDate(t *testing.T) {
	a := domain.Activity{Slug: "walk", Options: morningAfternoon()}

	d := date("2025-03-10")
	got := app.ResolveOptions(a, &d)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected morning option only, got %+v", got)
	}

	d = date("2025-03-13")
	if got := app.ResolveOptions(a, &d); len(got) != 0 {
		t.Fatalf("expected no options, got %+v", got)
	}
}

func TestResolveOptions_NoDateReturnsAll(t *testing.T) {
	a := domain.Activity{Slug: "walk", Options: morningAfternoon()}
	got := app.ResolveOptions(a, nil)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected all options in input order, got %+v", got)
	}
}

func TestResolveOptions_PackageIgnoresDate(t *testing.T) {
	a := domain.Activity{
		Slug:          "tuscany",
		IsTourPackage: true,
		Options:       []domain.Option{{ID: 1}, {ID: 2}}, // no dates, package convention
	}
	d := date("2031-01-01")
	if got := app.ResolveOptions(a, &d); len(got) != 2 {
		t.Fatalf("packages must return all options regardless of date, got %d", len(got))
	}
}

func TestResolveOptions_Stable(t *testing.T) {
	a := domain.Activity{Options: []domain.Option{
		{ID: 3, AvailableDates: []string{"2025-03-10"}},
		{ID: 1, AvailableDates: []string{"2025-03-10"}},
		{ID: 2, AvailableDates: []string{"2025-03-10"}},
	}}
	d := date("2025-03-10")
	first := app.ResolveOptions(a, &d)
	second := app.ResolveOptions(a, &d)
	for i := range first {
		if first[i].ID != second[i].ID || first[i].ID != a.Options[i].ID {
			t.Fatalf("resolution must preserve input order across calls")
		}
	}
}

func TestIsDateAvailable(t *testing.T) {
	a := domain.Activity{Options: morningAfternoon()}
	if !app.IsDateAvailable(a, date("2025-03-11")) {
		t.Fatalf("2025-03-11 is covered by the afternoon option")
	}
	if app.IsDateAvailable(a, date("2025-03-13")) {
		t.Fatalf("2025-03-13 is not covered by any option")
	}
	pkg := domain.Activity{IsTourPackage: true}
	if !app.IsDateAvailable(pkg, date("2025-03-13")) {
		t.Fatalf("packages are available for any date")
	}
}

func TestUpcomingAvailability(t *testing.T) {
	a := domain.Activity{Options: morningAfternoon()}
	days := app.UpcomingAvailability(a, date("2025-03-10"), 4)
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	want := []bool{true, true, true, false} // 10, 11, 12 covered; 13 not
	for i, d := range days {
		if d.Available != want[i] {
			t.Fatalf("day %s: got %v want %v", d.Date, d.Available, want[i])
		}
	}
}
