package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travelgo/internal/domain"
)

// ValidationError is a user-correctable precondition failure. It aborts the
// operation with no partial state change.
type ValidationError struct{ Reason string }

func (e *ValidationError) Error() string { return e.Reason }

var (
	ErrDateRequired   = &ValidationError{Reason: "date required"}
	ErrOptionRequired = &ValidationError{Reason: "package option required"}
	ErrNoTravelers    = &ValidationError{Reason: "at least one traveler required"}
)

type BookingService struct {
	cart domain.CartSink
	now  func() time.Time
}

func NewBookingService(cart domain.CartSink) *BookingService {
	return &BookingService{cart: cart, now: time.Now}
}

// Compose validates a booking attempt and, on success, appends exactly one
// line item to the session's cart. Preconditions are checked in order and
// fail fast: date, then option, then travelers. Repeated calls append
// repeatedly; the cart never deduplicates.
func (s *BookingService) Compose(ctx context.Context, sessionID string, a domain.Activity, opt *domain.Option, date *time.Time, t domain.Travelers) (domain.CartLineItem, error) {
	if !a.IsTourPackage && date == nil {
		return domain.CartLineItem{}, ErrDateRequired
	}
	if opt == nil {
		return domain.CartLineItem{}, ErrOptionRequired
	}
	if t.Total() == 0 {
		return domain.CartLineItem{}, ErrNoTravelers
	}

	// Packages are not date-scoped; stamp today as an informational
	// placeholder when no date was chosen.
	when := s.now().UTC()
	if date != nil {
		when = *date
	}
	iso := when.Format(domain.ISODate)

	unit := opt.EffectivePrice()
	item := domain.CartLineItem{
		ID:            uuid.NewString(),
		ActivityID:    a.ID,
		ActivityTitle: a.Title,
		Image:         a.Image,
		IsTourPackage: a.IsTourPackage,
		StartDate:     iso,
		EndDate:       iso,
		Adults:        t.Adults,
		Children:      t.Children,
		Infants:       t.Infants,
		UnitPrice:     unit,
		Total:         unit * float64(t.Total()),
		Option: domain.OptionSnapshot{
			ID:       opt.ID,
			Title:    opt.Title,
			TimeSlot: opt.TimeSlot,
		},
		AddedAt: s.now().UTC(),
	}

	if err := s.cart.Add(ctx, sessionID, item); err != nil {
		return domain.CartLineItem{}, err
	}
	return item, nil
}
