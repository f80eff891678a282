package domain

import "time"

type Travelers struct {
	Adults   int
	Children int
	Infants  int
}

func (t Travelers) Total() int { return t.Adults + t.Children + t.Infants }

// OptionSnapshot is the denormalized option subset carried on a cart line
// item so the item survives later catalog changes.
type OptionSnapshot struct {
	ID       int64
	Title    string
	TimeSlot string
}

// CartLineItem is a composed, priced booking request ready for checkout.
// Created once per add-to-cart action and never mutated in place.
type CartLineItem struct {
	ID            string
	ActivityID    int64
	ActivityTitle string
	Image         string
	IsTourPackage bool
	StartDate     string // ISO; equals EndDate for single-date bookings
	EndDate       string
	Adults        int
	Children      int
	Infants       int
	UnitPrice     float64
	Total         float64
	Option        OptionSnapshot
	AddedAt       time.Time
}

// RecentActivity is the denormalized summary kept in the recently-viewed list.
type RecentActivity struct {
	ActivityID  int64
	Slug        string
	Title       string
	Image       string
	Destination string
	Price       float64
	Rating      float64
}

// Selection is the per-detail-page booking option selection: a nullable
// value with a single toggle transition. Selecting the current option again
// clears it; selecting a different option replaces it outright.
type Selection struct {
	option *Option
}

func (s *Selection) Toggle(o Option) {
	if s.option != nil && s.option.ID == o.ID {
		s.option = nil
		return
	}
	cp := o
	s.option = &cp
}

func (s *Selection) Current() *Option { return s.option }
func (s *Selection) Clear()           { s.option = nil }
