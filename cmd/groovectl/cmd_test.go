package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/groove"
	"github.com/2beens/groove/internal/notify"
	"github.com/2beens/groove/internal/sprint"
	"github.com/2beens/groove/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-11 is a Monday, a rest day with default settings
var monday7am = time.Date(2024, 3, 11, 7, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()

	s := store.NewMemory()
	require.NoError(t, store.SaveJSON(context.Background(), s, store.KeySprintSessions, []sprint.Session{
		{Date: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 4, 19, 0, 0, 0, 0, time.UTC)},
	}))

	return NewApp(groove.NewService(groove.ServiceParams{
		Store:    s,
		Notifier: notify.NewRecorder(),
		Now:      func() time.Time { return monday7am },
	}), time.UTC)
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd := SetupCommands(app)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands_Today(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-03-11 (rest day)")
	assert.Contains(t, out, "nothing scheduled")

	out, err = run(t, app, "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "ID  TIME")
	assert.NotContains(t, out, "already scheduled")

	out, err = run(t, app, "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "already scheduled today")

	out, err = run(t, app, "snooze", "0", "--minutes", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "snoozed until 07:10:00")

	_, err = run(t, app, "snooze", "zero")
	assert.Error(t, err)
}

func TestCommands_Exercises(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "exercises", "--type", "strength")
	require.NoError(t, err)
	assert.Contains(t, out, "push_ups")
	assert.NotContains(t, out, "mobility")

	_, err = run(t, app, "exercises", "--type", "cardio")
	assert.Error(t, err)

	out, err = run(t, app, "complete", "push_ups", "--reps", "4", "--easy")
	require.NoError(t, err)
	assert.Contains(t, out, "Push-ups: 4 -> 6 reps")

	out, err = run(t, app, "complete", "push_ups", "--reps", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Push-ups: stays at 6 reps")

	out, err = run(t, app, "reps", "push_ups", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Push-ups: 1 reps")

	out, err = run(t, app, "reset", "push_ups")
	require.NoError(t, err)
	assert.Contains(t, out, "Push-ups reset to 4 reps")

	out, err = run(t, app, "disable", "squats")
	require.NoError(t, err)
	assert.Contains(t, out, "enabled: false")

	out, err = run(t, app, "performed", "squats")
	require.NoError(t, err)
	assert.Contains(t, out, "marked as performed")

	_, err = run(t, app, "performed", "nope")
	assert.ErrorIs(t, err, exercises.ErrExerciseNotFound)
}

func TestCommands_WalksAndSprints(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "walk", "25m")
	require.NoError(t, err)
	assert.Contains(t, out, "walked today: 25m0s")

	out, err = run(t, app, "walk", "stats", "--range", "month")
	require.NoError(t, err)
	assert.Contains(t, out, "range:          month")
	assert.Contains(t, out, "total:          25m0s")

	_, err = run(t, app, "walk", "stats", "--range", "decade")
	assert.Error(t, err)

	out, err = run(t, app, "sprint")
	require.NoError(t, err)
	assert.Contains(t, out, "today is a sprint day (completed: false)")
	assert.Contains(t, out, "[ ] 2024-03-25")

	out, err = run(t, app, "sprint", "done")
	require.NoError(t, err)
	assert.Contains(t, out, "sprint of 2024-03-11 completed")

	out, err = run(t, app, "sprint", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "completed:      1/1")

	out, err = run(t, app, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "[Tue Thu Sat]")
	assert.Contains(t, out, "active window: 08:00 - 20:00")
}
