package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/groove"
	"github.com/2beens/groove/internal/schedule"
	"github.com/2beens/groove/internal/sprint"
	"github.com/2beens/groove/pkg"
)

// App prints the results of service operations for the command line.
type App struct {
	service *groove.Service
	loc     *time.Location
}

func NewApp(service *groove.Service, loc *time.Location) *App {
	return &App{
		service: service,
		loc:     loc,
	}
}

func (a *App) Today(ctx context.Context, out io.Writer) error {
	today := a.service.TodaySchedule(ctx)
	fmt.Fprintf(out, "%s (%s day)\n", today.Date, today.DayType)
	if len(today.Schedule) == 0 {
		fmt.Fprintln(out, "nothing scheduled, run 'groovectl refresh'")
		return nil
	}
	return printSchedule(out, today.Schedule)
}

func (a *App) Refresh(ctx context.Context, out io.Writer) error {
	refreshed, err := a.service.DailyRefresh(ctx)
	if err != nil {
		return err
	}
	if !refreshed {
		fmt.Fprintln(out, "already scheduled today")
	}
	return a.Today(ctx, out)
}

func (a *App) Reschedule(ctx context.Context, out io.Writer) error {
	if _, err := a.service.Reschedule(ctx); err != nil {
		return err
	}
	return a.Today(ctx, out)
}

func (a *App) Shuffle(ctx context.Context, out io.Writer) error {
	if _, err := a.service.Shuffle(ctx); err != nil {
		return err
	}
	return a.Today(ctx, out)
}

func (a *App) Snooze(ctx context.Context, out io.Writer, notificationID int, d time.Duration) error {
	entry, err := a.service.Snooze(ctx, notificationID, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s snoozed until %s\n", entry.ExerciseName, entry.ScheduledTime.In(a.loc).Format(time.TimeOnly))
	return nil
}

func (a *App) Exercises(ctx context.Context, out io.Writer, exType exercises.Type) error {
	list, err := a.service.Exercises(ctx, exType)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOUNT\tENABLED\tLAST")
	for _, ex := range list {
		last := "-"
		if ex.LastPerformedDate != nil {
			last = pkg.FormatDate(ex.LastPerformedDate.In(a.loc))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d %s\t%t\t%s\n", ex.ID, ex.Name, ex.Type, ex.CurrentReps, ex.Unit(), ex.IsEnabled, last)
	}
	return w.Flush()
}

func (a *App) Complete(ctx context.Context, out io.Writer, id string, actualReps int, wasEasy bool) error {
	ex, result, err := a.service.CompleteSession(ctx, id, actualReps, wasEasy)
	if err != nil {
		return err
	}
	if result.Progressed {
		fmt.Fprintf(out, "%s: %d -> %d %s\n", ex.Name, result.PreviousReps, result.NewReps, ex.Unit())
		return nil
	}
	fmt.Fprintf(out, "%s: stays at %d %s\n", ex.Name, ex.CurrentReps, ex.Unit())
	return nil
}

func (a *App) Performed(ctx context.Context, out io.Writer, id string) error {
	ex, err := a.service.MarkAsPerformed(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s marked as performed\n", ex.Name)
	return nil
}

func (a *App) SetEnabled(ctx context.Context, out io.Writer, id string, enabled bool) error {
	ex, err := a.service.SetExerciseEnabled(ctx, id, enabled)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s enabled: %t\n", ex.Name, ex.IsEnabled)
	return nil
}

func (a *App) AdjustReps(ctx context.Context, out io.Writer, id string, reps int) error {
	ex, err := a.service.AdjustReps(ctx, id, reps)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d %s\n", ex.Name, ex.CurrentReps, ex.Unit())
	return nil
}

func (a *App) Reset(ctx context.Context, out io.Writer, id string) error {
	ex, err := a.service.ResetExercise(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s reset to %d %s\n", ex.Name, ex.CurrentReps, ex.Unit())
	return nil
}

func (a *App) Settings(ctx context.Context, out io.Writer) error {
	s := a.service.Settings(ctx)
	var sportDays []string
	for day := 1; day <= 7; day++ {
		if s.SportDays[day] {
			sportDays = append(sportDays, time.Weekday(day%7).String()[:3])
		}
	}
	fmt.Fprintf(out, "sport days:    %v\n", sportDays)
	fmt.Fprintf(out, "active window: %s - %s\n", s.ActiveWindowStart, s.ActiveWindowEnd)
	fmt.Fprintf(out, "snacks/day:    %d\n", s.SnacksPerDay)
	fmt.Fprintf(out, "notifications: %t\n", s.NotificationsEnabled)
	return nil
}

func (a *App) AddWalk(ctx context.Context, out io.Writer, d time.Duration) error {
	w, err := a.service.AddWalkSeconds(ctx, int(d.Seconds()))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "walked today: %s\n", time.Duration(w.TotalSeconds)*time.Second)
	return nil
}

func (a *App) WalkStats(ctx context.Context, out io.Writer, walkRange groove.WalkRange) error {
	report, err := a.service.WalkStats(ctx, walkRange)
	if err != nil {
		return err
	}
	st := report.Statistics
	fmt.Fprintf(out, "range:          %s\n", report.Range)
	fmt.Fprintf(out, "days walked:    %d\n", st.CompletedDays)
	fmt.Fprintf(out, "total:          %s\n", time.Duration(st.TotalSeconds)*time.Second)
	fmt.Fprintf(out, "average:        %s\n", time.Duration(st.AverageSeconds)*time.Second)
	fmt.Fprintf(out, "current streak: %d\n", report.CurrentStreak)
	fmt.Fprintf(out, "longest streak: %d\n", report.LongestStreak)
	return nil
}

func (a *App) Sprints(ctx context.Context, out io.Writer) error {
	overview := a.service.Sprints(ctx)
	if overview.Today != nil {
		fmt.Fprintf(out, "today is a sprint day (completed: %t)\n", overview.Today.Completed)
	}
	printSessions(out, "upcoming", overview.Upcoming)
	printSessions(out, "past", overview.Past)
	return nil
}

func (a *App) CompleteSprint(ctx context.Context, out io.Writer) error {
	session, err := a.service.CompleteTodaysSprint(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "sprint of %s completed\n", pkg.FormatDate(session.Date))
	return nil
}

func (a *App) SprintStats(ctx context.Context, out io.Writer) error {
	st := a.service.SprintStats(ctx)
	fmt.Fprintf(out, "completed:      %d/%d (%.0f%%)\n", st.CompletedSessions, st.TotalSessions, st.CompletionRate*100)
	fmt.Fprintf(out, "current streak: %d\n", st.CurrentStreak)
	fmt.Fprintf(out, "longest streak: %d\n", st.LongestStreak)
	return nil
}

func printSchedule(out io.Writer, list []schedule.ScheduledExercise) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tEXERCISE\tSNOOZED")
	for _, entry := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\n",
			entry.NotificationID, entry.ScheduledTime.Format("15:04"), entry.ExerciseName, entry.IsSnoozed)
	}
	return w.Flush()
}

func printSessions(out io.Writer, title string, sessions []sprint.Session) {
	fmt.Fprintf(out, "%s:\n", title)
	if len(sessions) == 0 {
		fmt.Fprintln(out, "  -")
		return
	}
	for _, s := range sessions {
		mark := " "
		if s.Completed {
			mark = "x"
		}
		fmt.Fprintf(out, "  [%s] %s\n", mark, pkg.FormatDate(s.Date))
	}
}
