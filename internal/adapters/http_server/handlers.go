package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travelgo/internal/app"
	"travelgo/internal/domain"
)

type Handlers struct {
	Q    *app.QueryService
	B    *app.BookingService
	Cart domain.CartSink
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/activities", h.searchActivities)
	s.mux.Get("/v1/activities/{slug}", h.getActivity)
	s.mux.Get("/v1/activities/{slug}/options", h.listOptions)
	s.mux.Get("/v1/activities/{slug}/availability", h.availability)
	s.mux.Post("/v1/cart", h.addToCart)
	s.mux.Get("/v1/cart", h.listCart)
	s.mux.Get("/v1/recent", h.recentlyViewed)
}

func sessionID(r *http.Request) string { return r.Header.Get("X-Session-ID") }

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func parseISODate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.ISODate, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *Handlers) searchActivities(w http.ResponseWriter, r *http.Request) {
	qp := r.URL.Query()

	fs := domain.NewFilterState()
	fs.SetDestination(qp.Get("destination"))
	fs.SetCategory(qp.Get("category"))
	if v := qp.Get("rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 5 {
			writeProblem(w, http.StatusBadRequest, "Invalid rating", "rating must be a number between 0 and 5")
			return
		}
		fs.SetRating(f)
	}
	min, max := 0.0, float64(domain.DefaultMaxPrice)
	if v := qp.Get("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid price_min", "price_min must be a non-negative number")
			return
		}
		min = f
	}
	if v := qp.Get("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid price_max", "price_max must be a non-negative number")
			return
		}
		max = f
	}
	fs.SetPriceRange(min, max)
	fs.SetSortBy(domain.SortKey(qp.Get("sort")))

	from, err := parseISODate(qp.Get("date_from"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date_from", "use yyyy-MM-dd")
		return
	}
	to, err := parseISODate(qp.Get("date_to"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date_to", "use yyyy-MM-dd")
		return
	}

	ex := app.SearchRefinements{
		Query:           qp.Get("q"),
		Tabs:            qp["tab"],
		Categories:      qp["cat"],
		DurationBuckets: qp["bucket"],
		DateFrom:        from,
		DateTo:          to,
	}

	items, err := h.Q.Search(r.Context(), fs, ex)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Search failed", "")
		return
	}
	writeWithETag(w, r, struct {
		Items []domain.Activity `json:"items"`
		Count int               `json:"count"`
	}{Items: items, Count: len(items)})
}

func (h *Handlers) getActivity(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	a, err := h.Q.GetActivity(r.Context(), slug)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "activity not found")
		return
	}
	h.Q.RecordView(r.Context(), sessionID(r), a)
	writeWithETag(w, r, a)
}

func (h *Handlers) listOptions(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	a, err := h.Q.GetActivity(r.Context(), slug)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "activity not found")
		return
	}
	selected, err := parseISODate(r.URL.Query().Get("date"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "use yyyy-MM-dd")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Options []domain.Option `json:"options"`
	}{Options: app.ResolveOptions(a, selected)})
}

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	a, err := h.Q.GetActivity(r.Context(), slug)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "activity not found")
		return
	}

	from := time.Now().UTC()
	if f, perr := parseISODate(r.URL.Query().Get("from")); perr != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid from", "use yyyy-MM-dd")
		return
	} else if f != nil {
		from = *f
	}

	days := 7
	if ds := r.URL.Query().Get("days"); ds != "" {
		n, err := strconv.Atoi(ds)
		if err != nil || n <= 0 || n > 60 {
			writeProblem(w, http.StatusBadRequest, "Invalid days", "days must be an integer between 1 and 60")
			return
		}
		days = n
	}

	writeJSON(w, http.StatusOK, struct {
		Days []app.DayAvailability `json:"days"`
	}{Days: app.UpcomingAvailability(a, from, days)})
}

type addToCartRequest struct {
	Slug     string `json:"slug"`
	OptionID int64  `json:"optionId"`
	Date     string `json:"date,omitempty"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Infants  int    `json:"infants"`
}

func (h *Handlers) addToCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		writeProblem(w, http.StatusBadRequest, "Missing session", "X-Session-ID header is required")
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "malformed JSON")
		return
	}
	if req.Adults < 0 || req.Children < 0 || req.Infants < 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid travelers", "traveler counts must be non-negative")
		return
	}

	a, err := h.Q.GetActivity(r.Context(), req.Slug)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "activity not found")
		return
	}

	date, err := parseISODate(req.Date)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "use yyyy-MM-dd")
		return
	}

	var opt *domain.Option
	if req.OptionID != 0 {
		for i := range a.Options {
			if a.Options[i].ID == req.OptionID {
				opt = &a.Options[i]
				break
			}
		}
		if opt == nil {
			writeProblem(w, http.StatusNotFound, "Not Found", "option not found on activity")
			return
		}
	}

	item, err := h.B.Compose(r.Context(), sid, a, opt, date, domain.Travelers{
		Adults: req.Adults, Children: req.Children, Infants: req.Infants,
	})
	if err != nil {
		var ve *app.ValidationError
		if errors.As(err, &ve) {
			writeProblem(w, http.StatusUnprocessableEntity, "Booking rejected", ve.Reason)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Booking failed", "")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handlers) listCart(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		writeProblem(w, http.StatusBadRequest, "Missing session", "X-Session-ID header is required")
		return
	}
	items, err := h.Cart.List(r.Context(), sid)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Cart read failed", "")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Items []domain.CartLineItem `json:"items"`
	}{Items: items})
}

func (h *Handlers) recentlyViewed(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if sid == "" {
		writeProblem(w, http.StatusBadRequest, "Missing session", "X-Session-ID header is required")
		return
	}
	items, err := h.Q.RecentlyViewed(r.Context(), sid)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Recents read failed", "")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Items []domain.RecentActivity `json:"items"`
	}{Items: items})
}
