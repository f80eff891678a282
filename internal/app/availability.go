package app

import (
	"time"

	"travelgo/internal/domain"
)

// ResolveOptions narrows an activity's options to those bookable for the
// selected date. Tour packages are not date-scoped, so all options come back
// regardless of the date; with no date selected all options come back and
// the caller is expected to prompt for one before booking. Pure and stable:
// input order is preserved, never re-sorted.
func ResolveOptions(a domain.Activity, selected *time.Time) []domain.Option {
	if a.IsTourPackage || selected == nil {
		return a.Options
	}
	iso := selected.Format(domain.ISODate)
	out := make([]domain.Option, 0, len(a.Options))
	for _, o := range a.Options {
		if o.HasDate(iso) {
			out = append(out, o)
		}
	}
	return out
}

// IsDateAvailable reports whether at least one option can be booked for the
// date. Drives the calendar day enable/disable state and the 7-day picker.
func IsDateAvailable(a domain.Activity, d time.Time) bool {
	if a.IsTourPackage {
		return true
	}
	iso := d.Format(domain.ISODate)
	for _, o := range a.Options {
		if o.HasDate(iso) {
			return true
		}
	}
	return false
}

// DayAvailability is one entry of the quick-picker strip.
type DayAvailability struct {
	Date      string
	Available bool
}

// UpcomingAvailability returns per-day availability verdicts for n days
// starting at from.
func UpcomingAvailability(a domain.Activity, from time.Time, n int) []DayAvailability {
	out := make([]DayAvailability, 0, n)
	for i := 0; i < n; i++ {
		d := from.AddDate(0, 0, i)
		out = append(out, DayAvailability{
			Date:      d.Format(domain.ISODate),
			Available: IsDateAvailable(a, d),
		})
	}
	return out
}
