package domain

import "time"

// ISODate is the wire format for calendar dates throughout the catalog.
const ISODate = "2006-01-02"

type Activity struct {
	ID          int64
	Slug        string // stable external key, unique across the catalog
	Title       string
	Category    string
	Destination string
	Location    string
	Description string
	Rating      float64 // 0..5, one decimal
	ReviewCount int
	Duration    string // display string, e.g. "3 hours", "Full day"
	Price       float64
	Image       string
	// Activity-level availability window; used only for date-range search
	// filtering, not for option resolution. Nil means always matching.
	AvailableFrom *time.Time
	AvailableTo   *time.Time
	IsTourPackage bool
	Options       []Option
}

// Option is a purchasable variant of an Activity (time slot or package tier).
// Owned by exactly one Activity.
type Option struct {
	ID            int64 // unique within the parent activity
	Title         string
	Duration      string
	TimeSlot      string
	GuideLanguage string
	Price         float64
	OfferPrice    *float64 // when set, strictly less than Price
	SlotsLeft     int
	// ISO yyyy-MM-dd dates this option can be booked for. Empty by
	// convention on tour packages, which are valid for any date.
	AvailableDates []string
}

// EffectivePrice is the per-person price charged at booking time.
func (o Option) EffectivePrice() float64 {
	if o.OfferPrice != nil {
		return *o.OfferPrice
	}
	return o.Price
}

// HasDate reports whether the option can be booked for the given ISO date.
func (o Option) HasDate(iso string) bool {
	for _, d := range o.AvailableDates {
		if d == iso {
			return true
		}
	}
	return false
}

type SortKey string

const (
	SortPopular   SortKey = "popular" // reviewCount descending (default)
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// DefaultMaxPrice is the upper bound of an unconstrained price range.
const DefaultMaxPrice = 1_000_000

// FilterState holds the persisted search refinements for a session. It is
// the single source of truth for the read path and is mutated only through
// the setters below.
type FilterState struct {
	Destination string
	Category    string
	PriceMin    float64
	PriceMax    float64
	MinRating   float64
	SortBy      SortKey
}

func NewFilterState() FilterState {
	return FilterState{PriceMin: 0, PriceMax: DefaultMaxPrice, SortBy: SortPopular}
}

func (f *FilterState) SetDestination(d string) { f.Destination = d }
func (f *FilterState) SetCategory(c string)    { f.Category = c }
func (f *FilterState) SetRating(min float64)   { f.MinRating = min }

// SetPriceRange keeps min <= max by swapping when callers pass them reversed.
func (f *FilterState) SetPriceRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	f.PriceMin, f.PriceMax = min, max
}

func (f *FilterState) SetSortBy(k SortKey) {
	switch k {
	case SortPopular, SortPriceLow, SortPriceHigh, SortRating:
		f.SortBy = k
	default:
		f.SortBy = SortPopular
	}
}

// Reset returns the state to its unconstrained defaults ("clear all").
func (f *FilterState) Reset() { *f = NewFilterState() }
