package groove

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/internal/walk"
)

type WalkRange string

const (
	WalkRangeWeek  WalkRange = "week"
	WalkRangeMonth WalkRange = "month"
	WalkRangeYear  WalkRange = "year"
	WalkRangeAll   WalkRange = "all"
)

var ErrInvalidWalkRange = errors.New("invalid walk range")

func ParseWalkRange(s string) (WalkRange, error) {
	switch r := WalkRange(s); r {
	case WalkRangeWeek, WalkRangeMonth, WalkRangeYear, WalkRangeAll:
		return r, nil
	case "":
		return WalkRangeWeek, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidWalkRange, s)
	}
}

// WalkReport holds the statistics of a range. Streaks always look at all walks.
type WalkReport struct {
	Range         WalkRange        `json:"range"`
	Walks         []walk.DailyWalk `json:"walks"`
	Statistics    walk.Statistics  `json:"statistics"`
	CurrentStreak int              `json:"currentStreak"`
	LongestStreak int              `json:"longestStreak"`
	TimerRunning  bool             `json:"timerRunning"`
}

func (s *Service) AddWalkSeconds(ctx context.Context, seconds int) (_ walk.DailyWalk, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.addWalkSeconds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	w, err := s.walks.AddSecondsToTodaysWalk(ctx, seconds, s.now())
	if err != nil {
		return walk.DailyWalk{}, err
	}
	s.metrics.CounterWalkSeconds.Add(float64(seconds))
	return w, nil
}

func (s *Service) WalkStats(ctx context.Context, walkRange WalkRange) (WalkReport, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	all := s.walks.Walks(ctx)

	var inRange []walk.DailyWalk
	switch walkRange {
	case WalkRangeWeek:
		from, to := walk.WeekBounds(now)
		inRange = walk.InRange(all, from, to)
	case WalkRangeMonth:
		from, to := walk.MonthBounds(now)
		inRange = walk.InRange(all, from, to)
	case WalkRangeYear:
		from, to := walk.YearBounds(now)
		inRange = walk.InRange(all, from, to)
	case WalkRangeAll:
		inRange = all
	default:
		return WalkReport{}, fmt.Errorf("%w: %s", ErrInvalidWalkRange, walkRange)
	}
	if inRange == nil {
		inRange = []walk.DailyWalk{}
	}

	return WalkReport{
		Range:         walkRange,
		Walks:         inRange,
		Statistics:    walk.ComputeStatistics(inRange),
		CurrentStreak: walk.CurrentStreak(all, now),
		LongestStreak: walk.LongestStreak(all),
		TimerRunning:  s.walkTimer.Running(),
	}, nil
}

// StartWalkTimer returns false when the timer was already running.
func (s *Service) StartWalkTimer(ctx context.Context) bool {
	return s.walkTimer.Start(ctx)
}

// StopWalkTimer persists the timed seconds and returns them.
func (s *Service) StopWalkTimer(ctx context.Context) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	seconds, err := s.walkTimer.Stop(ctx)
	if err != nil {
		return 0, err
	}
	s.metrics.CounterWalkSeconds.Add(float64(seconds))
	return seconds, nil
}

func (s *Service) SetWalkNotes(ctx context.Context, notes string) (walk.DailyWalk, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.walks.SetNotes(ctx, s.now(), notes)
}
