package app

import (
	"strconv"
	"strings"
	"time"

	"travelgo/internal/domain"
)

/********** alias registries (single source of truth) **********/

var activityAliases = map[string][]string{
	"slug":        {"slug", "url_slug", "seo.slug"},
	"title":       {"title", "name", "activity_name", "headline"},
	"category":    {"category", "category_name", "type", "activity_type"},
	"destination": {"destination", "city", "location.city"},
	"location":    {"location", "full_location", "location.label", "address"},
	"description": {"description", "summary", "about", "description_long"},
	"duration":    {"duration", "duration_text", "length"},
	"image":       {"image", "image_url", "cover", "images.0"},
}

var optionAliases = map[string][]string{
	"title":    {"title", "name", "option_name"},
	"duration": {"duration", "duration_text"},
	"timeSlot": {"time_slot", "timeSlot", "slot", "start_time"},
	"guide":    {"guide", "guide_language", "language", "host_language"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps; numeric path parts
// index into arrays.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch obj := cur.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(obj) {
				return nil
			}
			cur = obj[i]
		default:
			return nil
		}
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstAlias: first non-empty string for a named alias set.
func firstAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return s
		}
	}
	return ""
}

// floatFlexible: number from several paths (float64/int/string like "45,99").
func floatFlexible(m map[string]any, paths ...string) (float64, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func intFlexible(m map[string]any, paths ...string) int {
	if f, ok := floatFlexible(m, paths...); ok {
		return int(f)
	}
	return 0
}

func boolFlexible(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return false
}

func strSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// isoDate normalizes date strings from the feed ("2025-03-10",
// "2025-03-10T09:00:00Z") to the canonical yyyy-MM-dd form. Returns "" when
// unparseable.
func isoDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 10 {
		if t, err := time.Parse(domain.ISODate, s[:10]); err == nil {
			return t.Format(domain.ISODate)
		}
	}
	return ""
}

func parseDatePtr(s string) *time.Time {
	if iso := isoDate(s); iso != "" {
		t, _ := time.Parse(domain.ISODate, iso)
		return &t
	}
	return nil
}

/********** mappers **********/

// mapActivity turns a raw feed payload into a domain Activity. The feed is
// not under our control, so lookups tolerate several field spellings and
// loose numeric encodings.
func mapActivity(p map[string]any) domain.Activity {
	price, _ := floatFlexible(p, "price", "base_price", "pricing.base", "price.amount")
	rating, _ := floatFlexible(p, "rating", "rating.value", "scores.overall")

	a := domain.Activity{
		ID:            int64(intFlexible(p, "id", "activity_id")),
		Slug:          firstAlias(p, activityAliases, "slug"),
		Title:         firstAlias(p, activityAliases, "title"),
		Category:      firstAlias(p, activityAliases, "category"),
		Destination:   firstAlias(p, activityAliases, "destination"),
		Location:      firstAlias(p, activityAliases, "location"),
		Description:   firstAlias(p, activityAliases, "description"),
		Duration:      firstAlias(p, activityAliases, "duration"),
		Image:         firstAlias(p, activityAliases, "image"),
		Price:         price,
		Rating:        rating,
		ReviewCount:   intFlexible(p, "review_count", "reviewCount", "reviews.count"),
		AvailableFrom: parseDatePtr(lookupStr(p, "available_from")),
		AvailableTo:   parseDatePtr(lookupStr(p, "available_to")),
		IsTourPackage: boolFlexible(p, "is_tour_package", "isTourPackage", "package"),
	}

	if arr, ok := lookupAny(p, "options").([]any); ok {
		for _, e := range arr {
			om, ok := e.(map[string]any)
			if !ok {
				continue
			}
			a.Options = append(a.Options, mapOption(om))
		}
	}
	return a
}

func mapOption(m map[string]any) domain.Option {
	price, _ := floatFlexible(m, "price", "base_price", "price.amount")
	o := domain.Option{
		ID:            int64(intFlexible(m, "id", "option_id")),
		Title:         firstAlias(m, optionAliases, "title"),
		Duration:      firstAlias(m, optionAliases, "duration"),
		TimeSlot:      firstAlias(m, optionAliases, "timeSlot"),
		GuideLanguage: firstAlias(m, optionAliases, "guide"),
		Price:         price,
		SlotsLeft:     intFlexible(m, "slots_left", "slotsLeft", "remaining"),
	}
	if f, ok := floatFlexible(m, "offer_price", "offerPrice", "discounted_price"); ok {
		o.OfferPrice = &f
	}
	for _, s := range strSlice(lookupAny(m, "available_dates")) {
		if iso := isoDate(s); iso != "" {
			o.AvailableDates = append(o.AvailableDates, iso)
		}
	}
	return o
}
