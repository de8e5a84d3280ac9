package groove

import (
	"context"
	"time"

	"github.com/2beens/groove/internal/sprint"
	"github.com/2beens/groove/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type SprintOverview struct {
	Today    *sprint.Session  `json:"today"`
	Upcoming []sprint.Session `json:"upcoming"`
	Past     []sprint.Session `json:"past"`
}

func (s *Service) Sprints(ctx context.Context) SprintOverview {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	overview := SprintOverview{
		Upcoming: s.sprints.Upcoming(ctx, now),
		Past:     s.sprints.Past(ctx, now),
	}
	if today, ok := s.sprints.Today(ctx, now); ok {
		overview.Today = &today
	}
	if overview.Upcoming == nil {
		overview.Upcoming = []sprint.Session{}
	}
	if overview.Past == nil {
		overview.Past = []sprint.Session{}
	}
	return overview
}

// CompleteTodaysSprint fails with sprint.ErrNoSprintToday when today is not a sprint day.
// Confirming an already completed session returns it unchanged.
func (s *Service) CompleteTodaysSprint(ctx context.Context) (_ sprint.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.completeTodaysSprint")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	if today, ok := s.sprints.Today(ctx, now); ok && today.Completed {
		// repeated confirmation, already counted
		return today, nil
	}

	session, err := s.sprints.CompleteToday(ctx, now)
	if err != nil {
		return sprint.Session{}, err
	}

	if err := s.notifier.Cancel(ctx, SprintNotificationID); err != nil {
		log.Errorf("cancel sprint alert: %s", err)
	}
	s.metrics.CounterSprintsCompleted.Inc()
	return session, nil
}

func (s *Service) SprintStats(ctx context.Context) sprint.Statistics {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sprints.Stats(ctx, s.now())
}

func (s *Service) UncompleteSprint(ctx context.Context, date time.Time) (sprint.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sprints.Uncomplete(ctx, date)
}

// RescheduleSprint moves an open sprint day within its month.
func (s *Service) RescheduleSprint(ctx context.Context, from, to time.Time) (sprint.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.sprints.Reschedule(ctx, from, to)
}
