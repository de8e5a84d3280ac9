package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	log "github.com/sirupsen/logrus"
)

type Repo struct {
	store store.Store
}

func NewRepo(s store.Store) *Repo {
	return &Repo{
		store: s,
	}
}

// Load returns the stored schedule; absent or unreadable data gives an empty one.
func (r *Repo) Load(ctx context.Context) []ScheduledExercise {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.load")
	defer span.End()

	var list []ScheduledExercise
	if _, err := store.LoadJSON(ctx, r.store, store.KeyScheduledExercises, &list); err != nil {
		log.Errorf("load scheduled exercises, using empty schedule: %s", err)
		return nil
	}
	return list
}

// Save replaces the stored schedule.
func (r *Repo) Save(ctx context.Context, list []ScheduledExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.schedule.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if list == nil {
		list = []ScheduledExercise{}
	}
	if err := store.SaveJSON(ctx, r.store, store.KeyScheduledExercises, list); err != nil {
		return fmt.Errorf("save scheduled exercises: %w", err)
	}
	return nil
}

// LastScheduledDate returns the day the schedule was last built, in loc.
func (r *Repo) LastScheduledDate(ctx context.Context, loc *time.Location) (time.Time, bool) {
	var raw string
	found, err := store.LoadJSON(ctx, r.store, store.KeyLastScheduledDate, &raw)
	if err != nil {
		log.Errorf("load last scheduled date: %s", err)
		return time.Time{}, false
	}
	if !found {
		return time.Time{}, false
	}

	date, err := pkg.ParseDate(raw, loc)
	if err != nil {
		log.Errorf("last scheduled date malformed: %s", err)
		return time.Time{}, false
	}
	return date, true
}

func (r *Repo) SetLastScheduledDate(ctx context.Context, date time.Time) error {
	if err := store.SaveJSON(ctx, r.store, store.KeyLastScheduledDate, pkg.FormatDate(date)); err != nil {
		return fmt.Errorf("save last scheduled date: %w", err)
	}
	return nil
}
