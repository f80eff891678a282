package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"travelgo/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valDate(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.Format(domain.ISODate)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// UpsertActivity writes the activity row and replaces its options and
// option dates wholesale, all inside one transaction.
func (r *Repo) UpsertActivity(ctx context.Context, a domain.Activity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertActivitySQL,
		a.ID,
		a.Slug,
		a.Title,
		a.Category,
		a.Destination,
		a.Location,
		a.Description,
		a.Rating,
		a.ReviewCount,
		a.Duration,
		a.Price,
		a.Image,
		valDate(a.AvailableFrom),
		valDate(a.AvailableTo),
		a.IsTourPackage,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, deleteOptionDatesSQL, a.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, deleteOptionsSQL, a.ID); err != nil {
		return err
	}

	if len(a.Options) > 0 {
		values := make([]string, 0, len(a.Options))
		args := make([]any, 0, len(a.Options)*10)
		for i, o := range a.Options {
			values = append(values, "(?,?,?,?,?,?,?,?,?,?)")
			args = append(args,
				a.ID,
				o.ID,
				i, // position preserves feed order for stable resolution
				o.Title,
				o.Duration,
				o.TimeSlot,
				o.GuideLanguage,
				o.Price,
				valF64(o.OfferPrice),
				o.SlotsLeft,
			)
		}
		if _, err := tx.ExecContext(ctx, insertOptionsPrefix+strings.Join(values, ","), args...); err != nil {
			return err
		}

		dv := make([]string, 0, 32)
		dargs := make([]any, 0, 96)
		for _, o := range a.Options {
			for _, d := range o.AvailableDates {
				dv = append(dv, "(?,?,?)")
				dargs = append(dargs, a.ID, o.ID, d)
			}
		}
		if len(dv) > 0 {
			if _, err := tx.ExecContext(ctx, insertOptionDatesPrefix+strings.Join(dv, ","), dargs...); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetActivity(ctx context.Context, slug string) (domain.Activity, error) {
	row := r.db.QueryRowContext(ctx, getActivitySQL, slug)
	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return domain.Activity{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Activity{}, err
	}

	rows, err := r.db.QueryContext(ctx, listOptionsForActivitySQL, a.ID)
	if err != nil {
		return domain.Activity{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var o domain.Option
		var offer sql.NullFloat64
		if err := rows.Scan(&o.ID, &o.Title, &o.Duration, &o.TimeSlot, &o.GuideLanguage,
			&o.Price, &offer, &o.SlotsLeft); err != nil {
			return domain.Activity{}, err
		}
		if offer.Valid {
			v := offer.Float64
			o.OfferPrice = &v
		}
		a.Options = append(a.Options, o)
	}
	if err := rows.Err(); err != nil {
		return domain.Activity{}, err
	}

	drows, err := r.db.QueryContext(ctx, listDatesForActivitySQL, a.ID)
	if err != nil {
		return domain.Activity{}, err
	}
	defer drows.Close()
	byOption := map[int64][]string{}
	for drows.Next() {
		var optID int64
		var d string
		if err := drows.Scan(&optID, &d); err != nil {
			return domain.Activity{}, err
		}
		byOption[optID] = append(byOption[optID], d)
	}
	if err := drows.Err(); err != nil {
		return domain.Activity{}, err
	}
	for i := range a.Options {
		a.Options[i].AvailableDates = byOption[a.Options[i].ID]
	}
	return a, nil
}

// ListActivities loads the whole catalog with options and dates attached.
// Three queries total; the catalog is small enough to assemble in memory.
func (r *Repo) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx, listActivitiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Activity
	index := map[int64]int{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		index[a.ID] = len(items)
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orows, err := r.db.QueryContext(ctx, listAllOptionsSQL)
	if err != nil {
		return nil, err
	}
	defer orows.Close()
	optIndex := map[[2]int64]*domain.Option{}
	for orows.Next() {
		var actID int64
		var o domain.Option
		var offer sql.NullFloat64
		if err := orows.Scan(&actID, &o.ID, &o.Title, &o.Duration, &o.TimeSlot, &o.GuideLanguage,
			&o.Price, &offer, &o.SlotsLeft); err != nil {
			return nil, err
		}
		if offer.Valid {
			v := offer.Float64
			o.OfferPrice = &v
		}
		i, ok := index[actID]
		if !ok {
			continue
		}
		items[i].Options = append(items[i].Options, o)
	}
	if err := orows.Err(); err != nil {
		return nil, err
	}

	// Index option pointers only after the Options slices stop growing;
	// earlier pointers would go stale on append reallocation.
	for i := range items {
		for j := range items[i].Options {
			optIndex[[2]int64{items[i].ID, items[i].Options[j].ID}] = &items[i].Options[j]
		}
	}

	drows, err := r.db.QueryContext(ctx, listAllDatesSQL)
	if err != nil {
		return nil, err
	}
	defer drows.Close()
	for drows.Next() {
		var actID, optID int64
		var d string
		if err := drows.Scan(&actID, &optID, &d); err != nil {
			return nil, err
		}
		if o, ok := optIndex[[2]int64{actID, optID}]; ok {
			o.AvailableDates = append(o.AvailableDates, d)
		}
	}
	return items, drows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanActivity(row rowScanner) (domain.Activity, error) {
	var a domain.Activity
	// DSN sets parseTime=true, so DATE columns scan as time.Time.
	var from, to sql.NullTime
	err := row.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Category, &a.Destination, &a.Location, &a.Description,
		&a.Rating, &a.ReviewCount, &a.Duration, &a.Price, &a.Image,
		&from, &to, &a.IsTourPackage,
	)
	if err != nil {
		return domain.Activity{}, err
	}
	a.AvailableFrom = nullDatePtr(from)
	a.AvailableTo = nullDatePtr(to)
	return a, nil
}

func nullDatePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
