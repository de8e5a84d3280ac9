package sprint

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/2beens/groove/internal/store"
	"github.com/2beens/groove/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedSessions(t *testing.T, s store.Store, sessions ...Session) {
	t.Helper()
	require.NoError(t, store.SaveJSON(context.Background(), s, store.KeySprintSessions, sessions))
}

func TestGenerateDates(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := time.January; month <= time.December; month++ {
			days := pkg.DaysIn(year, month)
			for range 50 {
				dates := GenerateDates(year, month, time.UTC, pkg.NewRand())
				day1, day2 := dates[0].Day(), dates[1].Day()

				assert.Equal(t, month, dates[0].Month())
				assert.Equal(t, month, dates[1].Month())
				assert.GreaterOrEqual(t, day1, 1)
				assert.LessOrEqual(t, day1, days/2)
				assert.LessOrEqual(t, day2, days)
				assert.GreaterOrEqual(t, dates[1].Sub(dates[0]), MinDaysApart*24*time.Hour)
			}
		}
	}
}

func TestEnsureScheduled_Idempotent(t *testing.T) {
	ctx := context.Background()
	scheduler := NewScheduler(store.NewMemory(), nil)

	added, err := scheduler.EnsureScheduled(ctx, 2024, time.February, time.UTC)
	require.NoError(t, err)
	require.Len(t, added, 2)
	first := scheduler.Sessions(ctx)

	added, err = scheduler.EnsureScheduled(ctx, 2024, time.February, time.UTC)
	require.NoError(t, err)
	assert.Empty(t, added)
	assert.Equal(t, first, scheduler.Sessions(ctx))
	assert.Len(t, first, 2)
}

func TestEnsureScheduled_TopsUp(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	existing := Session{Date: date(2024, 3, 20), Completed: true}
	seedSessions(t, s, existing)

	scheduler := NewScheduler(s, nil)
	_, err := scheduler.EnsureScheduled(ctx, 2024, time.March, time.UTC)
	require.NoError(t, err)

	sessions := scheduler.Sessions(ctx)
	require.Len(t, sessions, 2)
	assert.Contains(t, sessions, existing)
}

func TestEnsureUpcoming(t *testing.T) {
	ctx := context.Background()
	scheduler := NewScheduler(store.NewMemory(), nil)

	added, err := scheduler.EnsureUpcoming(ctx, time.Date(2024, 12, 20, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, added, 4)

	perMonth := map[string]int{}
	for _, session := range scheduler.Sessions(ctx) {
		perMonth[session.Date.Format("2006-01")]++
	}
	assert.Equal(t, map[string]int{"2024-12": 2, "2025-01": 2}, perMonth)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	seedSessions(t, s,
		Session{Date: date(2024, 3, 20)},
		Session{Date: date(2024, 3, 4), Completed: true},
		Session{Date: date(2024, 4, 2)},
		Session{Date: date(2024, 3, 12)},
	)
	scheduler := NewScheduler(s, nil)
	now := time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC)

	upcoming := scheduler.Upcoming(ctx, now)
	require.Len(t, upcoming, 3)
	assert.Equal(t, date(2024, 3, 12), upcoming[0].Date)
	assert.Equal(t, date(2024, 3, 20), upcoming[1].Date)
	assert.Equal(t, date(2024, 4, 2), upcoming[2].Date)

	past := scheduler.Past(ctx, now)
	require.Len(t, past, 1)
	assert.Equal(t, date(2024, 3, 4), past[0].Date)

	today, ok := scheduler.Today(ctx, now)
	require.True(t, ok)
	assert.Equal(t, date(2024, 3, 12), today.Date)

	_, ok = scheduler.Today(ctx, now.AddDate(0, 0, 1))
	assert.False(t, ok)
}

func TestCompleteToday(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	seedSessions(t, s, Session{Date: date(2024, 3, 12)})
	scheduler := NewScheduler(s, nil)

	_, err := scheduler.CompleteToday(ctx, time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrNoSprintToday)

	now := time.Date(2024, 3, 12, 18, 30, 0, 0, time.UTC)
	session, err := scheduler.CompleteToday(ctx, now)
	require.NoError(t, err)
	assert.True(t, session.Completed)
	require.NotNil(t, session.CompletedAt)
	assert.Equal(t, now, *session.CompletedAt)

	again, err := scheduler.CompleteToday(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, now, *again.CompletedAt)

	today, ok := scheduler.Today(ctx, now)
	require.True(t, ok)
	assert.True(t, today.Completed)

	undone, err := scheduler.Uncomplete(ctx, now)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)

	_, err = scheduler.Uncomplete(ctx, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	completedAt := time.Date(2024, 3, 4, 19, 0, 0, 0, time.UTC)
	seedSessions(t, s,
		Session{Date: date(2024, 3, 4), Completed: true, CompletedAt: &completedAt},
		Session{Date: date(2024, 3, 20)},
	)
	scheduler := NewScheduler(s, nil)

	moved, err := scheduler.Reschedule(ctx, date(2024, 3, 20), date(2024, 3, 22))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 22), moved.Date)
	_, ok := scheduler.Today(ctx, date(2024, 3, 20))
	assert.False(t, ok)
	assert.Len(t, scheduler.Sessions(ctx), 2)

	_, err = scheduler.Reschedule(ctx, date(2024, 3, 4), date(2024, 3, 6))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	_, err = scheduler.Reschedule(ctx, date(2024, 3, 22), date(2024, 4, 1))
	assert.ErrorIs(t, err, ErrOtherMonth)
	_, err = scheduler.Reschedule(ctx, date(2024, 3, 22), date(2024, 3, 4))
	assert.ErrorIs(t, err, ErrDateTaken)
	_, err = scheduler.Reschedule(ctx, date(2024, 3, 23), date(2024, 3, 25))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestComputeStatistics(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	done := func(d time.Time) Session { return Session{Date: d, Completed: true} }
	open := func(d time.Time) Session { return Session{Date: d} }

	testCases := []struct {
		name     string
		sessions []Session
		expected Statistics
	}{
		{
			name:     "no sessions",
			expected: Statistics{},
		},
		{
			name: "today still open does not break the streak",
			sessions: []Session{
				done(date(2024, 4, 3)), done(date(2024, 4, 15)), done(date(2024, 5, 2)), open(date(2024, 5, 10)),
			},
			expected: Statistics{TotalSessions: 4, CompletedSessions: 3, CurrentStreak: 3, LongestStreak: 3, CompletionRate: 75},
		},
		{
			name: "missed past session breaks the current streak",
			sessions: []Session{
				done(date(2024, 3, 5)), done(date(2024, 3, 19)), done(date(2024, 4, 3)), open(date(2024, 4, 15)), done(date(2024, 5, 2)),
			},
			expected: Statistics{TotalSessions: 5, CompletedSessions: 4, CurrentStreak: 1, LongestStreak: 3, CompletionRate: 80},
		},
		{
			name: "future sessions are ignored",
			sessions: []Session{
				open(date(2024, 5, 2)), open(date(2024, 5, 20)), open(date(2024, 6, 3)),
			},
			expected: Statistics{TotalSessions: 1, CompletedSessions: 0, CurrentStreak: 0, LongestStreak: 0, CompletionRate: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeStatistics(tc.sessions, now))
		})
	}
}

func TestSession_JSONRoundTrip(t *testing.T) {
	completedAt := time.Date(2024, 3, 4, 19, 3, 0, 0, time.UTC)
	sessions := []Session{
		{Date: date(2024, 3, 4), Completed: true, CompletedAt: &completedAt},
		{Date: date(2024, 3, 20)},
	}

	raw, err := json.Marshal(sessions)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"completedAt":null`)

	var got []Session
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, sessions, got)
}

func TestScheduler_MalformedStartsEmpty(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, store.KeySprintSessions, []byte(`[{"date": 12}]`)))

	scheduler := NewScheduler(s, nil)
	assert.Empty(t, scheduler.Sessions(ctx))

	added, err := scheduler.EnsureScheduled(ctx, 2024, time.March, time.UTC)
	require.NoError(t, err)
	assert.Len(t, added, 2)
}
