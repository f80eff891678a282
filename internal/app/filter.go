package app

import (
	"strconv"
	"strings"
	"time"

	"travelgo/internal/domain"
)

// SearchRefinements bundles the UI-local refinements that accompany a
// FilterState on the read path but are not persisted with it.
type SearchRefinements struct {
	Query           string
	Tabs            []string // multi-select category tabs (OR within)
	DurationBuckets []string // bucket keys, see durationBuckets (OR within)
	Categories      []string // sidebar multi-select categories (OR within)
	DateFrom        *time.Time
	DateTo          *time.Time
}

// DefaultDurationMinutes is assumed when a display duration string carries
// no recognizable unit.
const DefaultDurationMinutes = 120

type bucketRange struct {
	min, max int // half-open [min, max)
}

var durationBuckets = map[string]bucketRange{
	"upto-1h":   {0, 60},
	"1-4h":      {60, 240},
	"4-8h":      {240, 480},
	"full-day":  {480, 1440},
	"multi-day": {1440, 1 << 30},
}

// DurationBucketKeys lists the recognized bucket keys in display order.
var DurationBucketKeys = []string{"upto-1h", "1-4h", "4-8h", "full-day", "multi-day"}

// DurationMinutes parses a free-text display duration ("3 hours", "2 Days",
// "45 min") into total minutes. Numbers are summed per unit keyword so
// compound strings like "1 day 2 hours" work. Unparseable strings fall back
// to DefaultDurationMinutes rather than failing; filtering never errors on
// malformed display text.
func DurationMinutes(s string) int {
	total := 0
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		mult := 0
		switch {
		case strings.HasPrefix(f, "day"):
			mult = 1440
		case strings.HasPrefix(f, "hour") || strings.HasPrefix(f, "hr"):
			mult = 60
		case strings.HasPrefix(f, "min"):
			mult = 1
		default:
			continue
		}
		n := 1.0
		if i > 0 {
			if v, err := strconv.ParseFloat(fields[i-1], 64); err == nil {
				n = v
			}
		}
		total += int(n * float64(mult))
	}
	if total == 0 {
		return DefaultDurationMinutes
	}
	return total
}

// searchContext holds lowered strings and resolved bucket ranges so the
// per-activity match loop does no re-parsing.
type searchContext struct {
	fs      domain.FilterState
	query   string
	dest    string
	cat     string
	tabs    []string
	cats    []string
	buckets []bucketRange
	from    *time.Time
	to      *time.Time
}

func newSearchContext(fs domain.FilterState, ex SearchRefinements) *searchContext {
	sc := &searchContext{
		fs:    fs,
		query: strings.ToLower(strings.TrimSpace(ex.Query)),
		dest:  strings.ToLower(strings.TrimSpace(fs.Destination)),
		cat:   strings.ToLower(strings.TrimSpace(fs.Category)),
		from:  ex.DateFrom,
		to:    ex.DateTo,
	}
	for _, t := range ex.Tabs {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			sc.tabs = append(sc.tabs, t)
		}
	}
	for _, c := range ex.Categories {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			sc.cats = append(sc.cats, c)
		}
	}
	for _, k := range ex.DurationBuckets {
		if b, ok := durationBuckets[k]; ok {
			sc.buckets = append(sc.buckets, b)
		}
	}
	return sc
}

// FilterActivities narrows the catalog to activities matching every active
// criterion. Each criterion is a no-op at its unconstrained default, so a
// default FilterState with empty refinements returns the catalog unchanged.
func FilterActivities(catalog []domain.Activity, fs domain.FilterState, ex SearchRefinements) []domain.Activity {
	sc := newSearchContext(fs, ex)

	out := make([]domain.Activity, 0, len(catalog))
	for _, a := range catalog {
		if sc.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// matches returns true only if ALL active criteria pass. Cheap checks run
// before string scans and date math.
func (sc *searchContext) matches(a domain.Activity) bool {
	// Price bounds, inclusive at both ends.
	if a.Price < sc.fs.PriceMin || a.Price > sc.fs.PriceMax {
		return false
	}

	// Minimum rating; 0 means unconstrained.
	if sc.fs.MinRating > 0 && a.Rating < sc.fs.MinRating {
		return false
	}

	// Free-text query over title, location, category, description.
	if sc.query != "" {
		if !strings.Contains(strings.ToLower(a.Title), sc.query) &&
			!strings.Contains(strings.ToLower(a.Location), sc.query) &&
			!strings.Contains(strings.ToLower(a.Category), sc.query) &&
			!strings.Contains(strings.ToLower(a.Description), sc.query) {
			return false
		}
	}

	// Tab membership (OR within the tab set).
	if len(sc.tabs) > 0 && !anyCategoryMatch(a.Category, sc.tabs) {
		return false
	}

	// Persisted single category.
	if sc.cat != "" && !categoryMatches(a.Category, sc.cat) {
		return false
	}

	// Sidebar categories (OR within).
	if len(sc.cats) > 0 && !anyCategoryMatch(a.Category, sc.cats) {
		return false
	}

	// Destination substring of location.
	if sc.dest != "" && !strings.Contains(strings.ToLower(a.Location), sc.dest) {
		return false
	}

	// Duration buckets (OR within).
	if len(sc.buckets) > 0 {
		mins := DurationMinutes(a.Duration)
		hit := false
		for _, b := range sc.buckets {
			if mins >= b.min && mins < b.max {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	// Date-range overlap against the activity-level availability window.
	// Activities without a window always pass.
	if sc.from != nil && sc.to != nil && a.AvailableFrom != nil && a.AvailableTo != nil {
		if sc.from.After(*a.AvailableTo) || sc.to.Before(*a.AvailableFrom) {
			return false
		}
	}

	return true
}

// categoryMatches tolerates naming drift between UI labels and catalog
// values: either string containing the other counts. Both args are compared
// case-insensitively; sel must already be lowercase.
func categoryMatches(activityCat, sel string) bool {
	ac := strings.ToLower(activityCat)
	return strings.Contains(ac, sel) || strings.Contains(sel, ac)
}

func anyCategoryMatch(activityCat string, sels []string) bool {
	for _, s := range sels {
		if categoryMatches(activityCat, s) {
			return true
		}
	}
	return false
}
