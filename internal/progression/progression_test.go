package progression

import (
	"testing"
	"time"

	"github.com/2beens/groove/internal/exercises"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC)

func TestCompleteSession_EasyProgresses(t *testing.T) {
	catalog := exercises.NewSeededCatalog()

	ex, result, err := CompleteSession(catalog, "push_ups", 4, true, now)
	require.NoError(t, err)
	assert.Equal(t, 6, ex.CurrentReps)
	assert.Equal(t, Result{Progressed: true, PreviousReps: 4, NewReps: 6}, result)
	require.NotNil(t, ex.LastPerformedDate)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), *ex.LastPerformedDate)

	// every time, by the same amount
	for want := 8; want <= 14; want += 2 {
		ex, _, err = CompleteSession(catalog, "push_ups", ex.CurrentReps, true, now)
		require.NoError(t, err)
		assert.Equal(t, want, ex.CurrentReps)
	}

	stored, err := catalog.ByID("push_ups")
	require.NoError(t, err)
	assert.Equal(t, 14, stored.CurrentReps)
}

func TestCompleteSession_TimedProgressesBySeconds(t *testing.T) {
	catalog := exercises.NewSeededCatalog()

	ex, result, err := CompleteSession(catalog, "plank", 40, true, now)
	require.NoError(t, err)
	assert.Equal(t, 35, ex.CurrentReps)
	assert.True(t, result.Progressed)
	assert.Equal(t, 30, result.PreviousReps)
}

func TestCompleteSession_NoProgress(t *testing.T) {
	testCases := []struct {
		name       string
		actualReps int
		wasEasy    bool
	}{
		{name: "hard", actualReps: 4, wasEasy: false},
		{name: "hard and more", actualReps: 10, wasEasy: false},
		{name: "easy but short", actualReps: 3, wasEasy: true},
		{name: "nothing done", actualReps: 0, wasEasy: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := exercises.NewSeededCatalog()
			for range 5 {
				ex, result, err := CompleteSession(catalog, "push_ups", tc.actualReps, tc.wasEasy, now)
				require.NoError(t, err)
				assert.Equal(t, 4, ex.CurrentReps)
				assert.False(t, result.Progressed)
				assert.Equal(t, 4, result.NewReps)
				assert.True(t, ex.PerformedOn(now))
			}
		})
	}
}

func TestCompleteSession_NotFound(t *testing.T) {
	_, _, err := CompleteSession(exercises.NewSeededCatalog(), "handstand", 4, true, now)
	assert.ErrorIs(t, err, exercises.ErrExerciseNotFound)
}

func TestMarkAsPerformed(t *testing.T) {
	catalog := exercises.NewSeededCatalog()

	ex, err := MarkAsPerformed(catalog, "squats", now)
	require.NoError(t, err)
	assert.Equal(t, 4, ex.CurrentReps)
	assert.True(t, ex.PerformedOn(now))

	_, err = MarkAsPerformed(catalog, "handstand", now)
	assert.ErrorIs(t, err, exercises.ErrExerciseNotFound)
}
