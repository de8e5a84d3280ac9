package schedule

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/2beens/groove/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnooze(t *testing.T) {
	original := at(monday, 10, 0)
	entry := ScheduledExercise{
		ExerciseID:     "push_ups",
		ExerciseName:   "Push-ups",
		ScheduledTime:  original,
		NotificationID: 3,
	}

	now := at(monday, 10, 2)
	snoozed := Snooze(entry, now, 15*time.Minute)
	assert.True(t, snoozed.IsSnoozed)
	assert.Equal(t, at(monday, 10, 17), snoozed.ScheduledTime)
	assert.Equal(t, 1003, snoozed.NotificationID)
	require.NotNil(t, snoozed.OriginalTime)
	assert.Equal(t, original, *snoozed.OriginalTime)
	assert.Equal(t, 3, snoozed.BaseID())

	again := Snooze(snoozed, at(monday, 10, 20), 15*time.Minute)
	assert.Equal(t, at(monday, 10, 35), again.ScheduledTime)
	assert.Equal(t, 1003, again.NotificationID)
	assert.Equal(t, original, *again.OriginalTime)

	// the input is left alone
	assert.False(t, entry.IsSnoozed)
	assert.Nil(t, entry.OriginalTime)
}

func TestFind(t *testing.T) {
	list := []ScheduledExercise{
		{ExerciseID: "a", NotificationID: 0},
		{ExerciseID: "b", NotificationID: 1001, IsSnoozed: true},
	}

	i, err := Find(list, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = Find(list, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	i, err = Find(list, 1001)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = Find(list, 7)
	assert.ErrorIs(t, err, ErrScheduledNotFound)
}

func TestScheduledExercise_JSONRoundTrip(t *testing.T) {
	original := at(monday, 10, 0)
	entries := []ScheduledExercise{
		{ExerciseID: "push_ups", ExerciseName: "Push-ups", ScheduledTime: at(monday, 9, 41), NotificationID: 0},
		{ExerciseID: "plank", ExerciseName: "Plank", ScheduledTime: at(monday, 10, 15), NotificationID: 1001, IsSnoozed: true, OriginalTime: &original},
	}

	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"exerciseId":"push_ups"`)
	assert.Contains(t, string(raw), `"originalTime":null`)

	var got []ScheduledExercise
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, entries, got)
}

func TestRepo(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := NewRepo(s)

	assert.Empty(t, repo.Load(ctx))
	_, ok := repo.LastScheduledDate(ctx, time.UTC)
	assert.False(t, ok)

	list := []ScheduledExercise{
		{ExerciseID: "push_ups", ExerciseName: "Push-ups", ScheduledTime: at(monday, 9, 41), NotificationID: 0},
	}
	require.NoError(t, repo.Save(ctx, list))
	assert.Equal(t, list, repo.Load(ctx))

	require.NoError(t, repo.Save(ctx, nil))
	assert.Empty(t, repo.Load(ctx))

	require.NoError(t, repo.SetLastScheduledDate(ctx, at(monday, 17, 30)))
	raw, err := s.Get(ctx, store.KeyLastScheduledDate)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-11"`, string(raw))

	date, ok := repo.LastScheduledDate(ctx, time.UTC)
	require.True(t, ok)
	assert.Equal(t, monday, date)
}

func TestRepo_Malformed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	repo := NewRepo(s)

	require.NoError(t, s.Set(ctx, store.KeyScheduledExercises, []byte(`{"not":"a list"}`)))
	assert.Empty(t, repo.Load(ctx))

	require.NoError(t, s.Set(ctx, store.KeyLastScheduledDate, []byte(`"11.03.2024"`)))
	_, ok := repo.LastScheduledDate(ctx, time.UTC)
	assert.False(t, ok)
}
