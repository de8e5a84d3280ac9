package sprint

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	log "github.com/sirupsen/logrus"
)

const SessionsPerMonth = 2

var (
	ErrNoSprintToday    = errors.New("no sprint scheduled for today")
	ErrSessionNotFound  = errors.New("sprint session not found")
	ErrAlreadyCompleted = errors.New("sprint session already completed")
	ErrDateTaken        = errors.New("sprint session already exists on that date")
	ErrOtherMonth       = errors.New("sprint can only move within its month")
)

// Scheduler keeps the sprint sessions, keyed by date, in the store.
// Every operation reads the sessions, applies its change and writes them back.
type Scheduler struct {
	store   store.Store
	newRand func() *rand.Rand
}

func NewScheduler(s store.Store, newRand func() *rand.Rand) *Scheduler {
	if newRand == nil {
		newRand = pkg.NewRand
	}
	return &Scheduler{
		store:   s,
		newRand: newRand,
	}
}

func (s *Scheduler) load(ctx context.Context) map[string]Session {
	var list []Session
	if _, err := store.LoadJSON(ctx, s.store, store.KeySprintSessions, &list); err != nil {
		log.Errorf("load sprint sessions, starting empty: %s", err)
		return map[string]Session{}
	}

	sessions := make(map[string]Session, len(list))
	for _, session := range list {
		sessions[session.key()] = session
	}
	return sessions
}

func (s *Scheduler) save(ctx context.Context, sessions map[string]Session) error {
	if err := store.SaveJSON(ctx, s.store, store.KeySprintSessions, sorted(sessions)); err != nil {
		return fmt.Errorf("save sprint sessions: %w", err)
	}
	return nil
}

func sorted(sessions map[string]Session) []Session {
	list := make([]Session, 0, len(sessions))
	for _, key := range slices.Sorted(maps.Keys(sessions)) {
		list = append(list, sessions[key])
	}
	return list
}

// Sessions returns all sessions, oldest first.
func (s *Scheduler) Sessions(ctx context.Context) []Session {
	return sorted(s.load(ctx))
}

// EnsureScheduled tops the month up to two sessions. Existing sessions are never regenerated,
// and a drawn date that already has a session is skipped. Returns the added sessions.
func (s *Scheduler) EnsureScheduled(ctx context.Context, year int, month time.Month, loc *time.Location) (added []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sprint.ensureScheduled")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions := s.load(ctx)
	inMonth := 0
	for _, session := range sessions {
		if session.Date.Year() == year && session.Date.Month() == month {
			inMonth++
		}
	}
	if inMonth >= SessionsPerMonth {
		return nil, nil
	}

	for _, date := range GenerateDates(year, month, loc, s.newRand()) {
		if inMonth >= SessionsPerMonth {
			break
		}
		session := Session{Date: date}
		if _, exists := sessions[session.key()]; exists {
			continue
		}
		sessions[session.key()] = session
		added = append(added, session)
		inMonth++
	}

	if len(added) == 0 {
		return nil, nil
	}
	if err := s.save(ctx, sessions); err != nil {
		return nil, err
	}

	log.Debugf("sprint sessions added for %d-%02d: %d", year, month, len(added))
	return added, nil
}

// EnsureUpcoming makes sure the current and the next month have their sessions.
func (s *Scheduler) EnsureUpcoming(ctx context.Context, now time.Time) ([]Session, error) {
	var added []Session
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, month := range []time.Time{firstOfMonth, firstOfMonth.AddDate(0, 1, 0)} {
		sessions, err := s.EnsureScheduled(ctx, month.Year(), month.Month(), now.Location())
		if err != nil {
			return added, err
		}
		added = append(added, sessions...)
	}
	return added, nil
}

// Upcoming returns sessions from today on, soonest first.
func (s *Scheduler) Upcoming(ctx context.Context, now time.Time) []Session {
	today := pkg.DateOnly(now)
	var upcoming []Session
	for _, session := range s.Sessions(ctx) {
		if !pkg.DateOnly(session.Date).Before(today) {
			upcoming = append(upcoming, session)
		}
	}
	return upcoming
}

// Past returns sessions before today, most recent first.
func (s *Scheduler) Past(ctx context.Context, now time.Time) []Session {
	today := pkg.DateOnly(now)
	var past []Session
	for _, session := range slices.Backward(s.Sessions(ctx)) {
		if pkg.DateOnly(session.Date).Before(today) {
			past = append(past, session)
		}
	}
	return past
}

// Today returns today's session, if there is one.
func (s *Scheduler) Today(ctx context.Context, now time.Time) (Session, bool) {
	session, ok := s.load(ctx)[pkg.FormatDate(now)]
	return session, ok
}

// CompleteToday marks today's session as done. Completing it again keeps the first completion time.
func (s *Scheduler) CompleteToday(ctx context.Context, now time.Time) (Session, error) {
	sessions := s.load(ctx)
	key := pkg.FormatDate(now)
	session, ok := sessions[key]
	if !ok {
		return Session{}, ErrNoSprintToday
	}
	if session.Completed {
		return session, nil
	}

	completedAt := now
	session.Completed = true
	session.CompletedAt = &completedAt
	sessions[key] = session

	if err := s.save(ctx, sessions); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Uncomplete reverts a completion, for a session confirmed by mistake.
func (s *Scheduler) Uncomplete(ctx context.Context, date time.Time) (Session, error) {
	sessions := s.load(ctx)
	key := pkg.FormatDate(date)
	session, ok := sessions[key]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, key)
	}

	session.Completed = false
	session.CompletedAt = nil
	sessions[key] = session

	if err := s.save(ctx, sessions); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Reschedule moves an open session to another free day of the same month.
func (s *Scheduler) Reschedule(ctx context.Context, from, to time.Time) (Session, error) {
	sessions := s.load(ctx)
	fromKey := pkg.FormatDate(from)
	session, ok := sessions[fromKey]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, fromKey)
	}
	if session.Completed {
		return Session{}, fmt.Errorf("%w: %s", ErrAlreadyCompleted, fromKey)
	}
	if from.Year() != to.Year() || from.Month() != to.Month() {
		return Session{}, fmt.Errorf("%w: %s -> %s", ErrOtherMonth, fromKey, pkg.FormatDate(to))
	}

	moved := Session{Date: pkg.DateOnly(to)}
	if _, taken := sessions[moved.key()]; taken {
		return Session{}, fmt.Errorf("%w: %s", ErrDateTaken, moved.key())
	}

	delete(sessions, fromKey)
	sessions[moved.key()] = moved
	if err := s.save(ctx, sessions); err != nil {
		return Session{}, err
	}
	return moved, nil
}

// Stats computes the statistics of the sessions up to today.
func (s *Scheduler) Stats(ctx context.Context, now time.Time) Statistics {
	return ComputeStatistics(s.Sessions(ctx), now)
}
