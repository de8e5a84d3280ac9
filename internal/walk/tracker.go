package walk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	log "github.com/sirupsen/logrus"
)

var ErrNegativeSeconds = errors.New("walk seconds cannot be negative")

// Tracker keeps one DailyWalk per date in the store.
type Tracker struct {
	store store.Store
}

func NewTracker(s store.Store) *Tracker {
	return &Tracker{
		store: s,
	}
}

func (t *Tracker) load(ctx context.Context) map[string]DailyWalk {
	var list []DailyWalk
	if _, err := store.LoadJSON(ctx, t.store, store.KeyDailyWalks, &list); err != nil {
		log.Errorf("load daily walks, starting empty: %s", err)
		return map[string]DailyWalk{}
	}

	walks := make(map[string]DailyWalk, len(list))
	for _, w := range list {
		if existing, ok := walks[w.key()]; ok {
			// merge duplicates written by older versions
			w.TotalSeconds += existing.TotalSeconds
		}
		walks[w.key()] = w
	}
	return walks
}

func (t *Tracker) save(ctx context.Context, walks map[string]DailyWalk) error {
	list := make([]DailyWalk, 0, len(walks))
	for _, w := range walks {
		list = append(list, w)
	}
	sortByDate(list)

	if err := store.SaveJSON(ctx, t.store, store.KeyDailyWalks, list); err != nil {
		return fmt.Errorf("save daily walks: %w", err)
	}
	return nil
}

// Walks returns all days, oldest first.
func (t *Tracker) Walks(ctx context.Context) []DailyWalk {
	walks := t.load(ctx)
	list := make([]DailyWalk, 0, len(walks))
	for _, w := range walks {
		list = append(list, w)
	}
	sortByDate(list)
	return list
}

// AddSecondsToTodaysWalk adds to today's total, creating today's record when missing.
func (t *Tracker) AddSecondsToTodaysWalk(ctx context.Context, seconds int, now time.Time) (_ DailyWalk, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "walk.addSeconds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if seconds < 0 {
		return DailyWalk{}, fmt.Errorf("%w: %d", ErrNegativeSeconds, seconds)
	}

	walks := t.load(ctx)
	key := pkg.FormatDate(now)
	today, ok := walks[key]
	if !ok {
		today = DailyWalk{Date: pkg.DateOnly(now)}
	}
	today.TotalSeconds += seconds
	walks[key] = today

	if err := t.save(ctx, walks); err != nil {
		return DailyWalk{}, err
	}
	return today, nil
}

// SetNotes sets the notes of a day. Blank notes clear them.
func (t *Tracker) SetNotes(ctx context.Context, date time.Time, notes string) (DailyWalk, error) {
	walks := t.load(ctx)
	key := pkg.FormatDate(date)
	w, ok := walks[key]
	if !ok {
		w = DailyWalk{Date: pkg.DateOnly(date)}
	}

	if notes = strings.TrimSpace(notes); notes == "" {
		w.Notes = nil
	} else {
		w.Notes = &notes
	}
	walks[key] = w

	if err := t.save(ctx, walks); err != nil {
		return DailyWalk{}, err
	}
	return w, nil
}

func (t *Tracker) Today(ctx context.Context, now time.Time) (DailyWalk, bool) {
	w, ok := t.load(ctx)[pkg.FormatDate(now)]
	return w, ok
}

func (t *Tracker) Range(ctx context.Context, from, to time.Time) []DailyWalk {
	return InRange(t.Walks(ctx), from, to)
}

// ThisWeek is Monday to Sunday.
func (t *Tracker) ThisWeek(ctx context.Context, now time.Time) []DailyWalk {
	from, to := WeekBounds(now)
	return t.Range(ctx, from, to)
}

func (t *Tracker) ThisMonth(ctx context.Context, now time.Time) []DailyWalk {
	from, to := MonthBounds(now)
	return t.Range(ctx, from, to)
}

func (t *Tracker) ThisYear(ctx context.Context, now time.Time) []DailyWalk {
	from, to := YearBounds(now)
	return t.Range(ctx, from, to)
}
