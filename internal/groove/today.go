package groove

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/notify"
	"github.com/2beens/groove/internal/schedule"
	"github.com/2beens/groove/internal/settings"
	"github.com/2beens/groove/internal/telemetry/tracing"
	"github.com/2beens/groove/pkg"

	log "github.com/sirupsen/logrus"
)

// Today is the view of the current day.
type Today struct {
	Date     string                       `json:"date"`
	DayType  settings.DayType             `json:"dayType"`
	Schedule []schedule.ScheduledExercise `json:"schedule"`
}

// DailyRefresh rebuilds today's schedule when that has not happened yet today, and makes sure
// the sprint days of this and next month exist. Returns whether the schedule was rebuilt.
func (s *Service) DailyRefresh(ctx context.Context) (refreshed bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dailyRefresh")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	if _, err := s.sprints.EnsureUpcoming(ctx, now); err != nil {
		log.Errorf("ensure upcoming sprints: %s", err)
	}

	if last, ok := s.scheduleRepo.LastScheduledDate(ctx, now.Location()); ok && pkg.SameDay(last, now) {
		return false, nil
	}

	if _, err := s.rescheduleLocked(ctx, now, true); err != nil {
		return false, err
	}

	log.Infof("daily refresh done for %s", pkg.FormatDate(now))
	return true, nil
}

// Reschedule rebuilds today's schedule on demand.
func (s *Service) Reschedule(ctx context.Context) (_ []schedule.ScheduledExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.reschedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.rescheduleLocked(ctx, s.now(), false)
}

// Shuffle makes all of today's exercises eligible again by forgetting when they were
// last performed, then rebuilds the schedule.
func (s *Service) Shuffle(ctx context.Context) (_ []schedule.ScheduledExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.shuffle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	catalog, err := s.exercisesRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	exType := exerciseTypeFor(s.settingsRepo.Load(ctx).DayType(now))
	cleared := catalog.ClearLastPerformed(exType)
	if err := s.exercisesRepo.Save(ctx, catalog); err != nil {
		return nil, err
	}
	log.Debugf("shuffle: cleared last performed date of %d %s exercises", cleared, exType)

	return s.rescheduleLocked(ctx, now, false)
}

// rescheduleLocked replaces today's schedule and all pending alerts, the sprint alert included.
// Only the daily refresh may show the sprint alert right away; a forced reschedule restores it
// only while the active window is still ahead.
func (s *Service) rescheduleLocked(ctx context.Context, now time.Time, dailyRefresh bool) ([]schedule.ScheduledExercise, error) {
	catalog, err := s.exercisesRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	appSettings := s.settingsRepo.Load(ctx)

	list := s.engine.Build(catalog, appSettings, now)
	if err := s.scheduleRepo.Save(ctx, list); err != nil {
		return nil, err
	}

	if err := s.notifier.CancelAll(ctx); err != nil {
		log.Errorf("cancel all alerts: %s", err)
	}
	if appSettings.NotificationsEnabled {
		for _, entry := range list {
			if err := s.notifier.ScheduleAt(ctx, snackAlert(catalog, entry)); err != nil {
				log.Errorf("schedule alert for [%s]: %s", entry.ExerciseID, err)
			}
		}
	}

	s.notifySprintLocked(ctx, now, dailyRefresh)

	if err := s.scheduleRepo.SetLastScheduledDate(ctx, now); err != nil {
		return nil, err
	}

	s.metrics.CounterDailyRefreshes.Inc()
	s.metrics.CounterSnacksScheduled.Add(float64(len(list)))
	log.Debugf("scheduled %d snacks for %s (%s day)", len(list), pkg.FormatDate(now), appSettings.DayType(now))

	return list, nil
}

// notifySprintLocked requests the sprint alert when today is an open sprint day:
// at the start of the active window, or right away (when showNow) if that has passed.
func (s *Service) notifySprintLocked(ctx context.Context, now time.Time, showNow bool) {
	appSettings := s.settingsRepo.Load(ctx)
	if !appSettings.NotificationsEnabled {
		return
	}

	session, ok := s.sprints.Today(ctx, now)
	if !ok || session.Completed {
		return
	}

	windowStart, _ := appSettings.WindowFor(now)
	alert := notify.Alert{
		ID:      SprintNotificationID,
		Title:   "Sprint day 🏃",
		Body:    "Today is a sprint day. Warm up well and go all out.",
		Payload: notify.SprintPayload(now),
	}

	var err error
	switch {
	case windowStart.After(now):
		alert.Time = windowStart
		err = s.notifier.ScheduleAt(ctx, alert)
	case showNow:
		alert.Time = now
		err = s.notifier.ShowNow(ctx, alert)
	}
	if err != nil {
		log.Errorf("sprint alert: %s", err)
	}
}

// Snooze moves a snack to now + d; d <= 0 means the configured snooze duration.
func (s *Service) Snooze(ctx context.Context, notificationID int, d time.Duration) (_ schedule.ScheduledExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.snooze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if d <= 0 {
		d = s.snoozeDuration
	}

	list := s.scheduleRepo.Load(ctx)
	i, err := schedule.Find(list, notificationID)
	if err != nil {
		return schedule.ScheduledExercise{}, err
	}

	entry := schedule.Snooze(list[i], s.now(), d)
	list[i] = entry
	if err := s.scheduleRepo.Save(ctx, list); err != nil {
		return schedule.ScheduledExercise{}, err
	}

	if s.settingsRepo.Load(ctx).NotificationsEnabled {
		catalog, err := s.exercisesRepo.Load(ctx)
		if err != nil {
			return schedule.ScheduledExercise{}, err
		}
		if err := s.notifier.Cancel(ctx, entry.BaseID()); err != nil {
			log.Errorf("cancel alert %d: %s", entry.BaseID(), err)
		}
		if err := s.notifier.ScheduleAt(ctx, snackAlert(catalog, entry)); err != nil {
			log.Errorf("schedule snoozed alert for [%s]: %s", entry.ExerciseID, err)
		}
	}

	s.metrics.CounterSnoozes.Inc()
	return entry, nil
}

// TodaySchedule returns the stored entries that belong to today.
func (s *Service) TodaySchedule(ctx context.Context) Today {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	today := Today{
		Date:     pkg.FormatDate(now),
		DayType:  s.settingsRepo.Load(ctx).DayType(now),
		Schedule: []schedule.ScheduledExercise{},
	}
	for _, entry := range s.scheduleRepo.Load(ctx) {
		original := entry.ScheduledTime
		if entry.OriginalTime != nil {
			original = *entry.OriginalTime
		}
		if pkg.SameDay(original, now) {
			today.Schedule = append(today.Schedule, entry)
		}
	}
	return today
}

func (s *Service) DayType(ctx context.Context, t time.Time) settings.DayType {
	return s.settingsRepo.Load(ctx).DayType(t)
}

func exerciseTypeFor(dayType settings.DayType) exercises.Type {
	if dayType == settings.Sport {
		return exercises.Mobility
	}
	return exercises.Strength
}

func snackAlert(catalog *exercises.Catalog, entry schedule.ScheduledExercise) notify.Alert {
	body := "Time for a quick exercise snack."
	if ex, err := catalog.ByID(entry.ExerciseID); err == nil {
		body = fmt.Sprintf("%d %s", ex.CurrentReps, ex.Unit())
		if ex.IsBilateral {
			body += " per side"
		}
		body += ". Easy, never to failure."
	}

	return notify.Alert{
		ID:      entry.NotificationID,
		Title:   entry.ExerciseName,
		Body:    body,
		Time:    entry.ScheduledTime,
		Payload: entry.ExerciseID,
	}
}
