package schedule

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/settings"
	"github.com/2beens/groove/pkg"

	log "github.com/sirupsen/logrus"
)

const (
	MinGapMinutes = 30
	// MaxPlacementAttempts bounds the draws per slot; the last draw is taken even when too close.
	MaxPlacementAttempts = 100
)

type RandFactory func() *rand.Rand

// Engine builds the day's schedule. A new generator is taken from newRand on every build.
type Engine struct {
	newRand RandFactory
}

func NewEngine(newRand RandFactory) *Engine {
	if newRand == nil {
		newRand = pkg.NewRand
	}
	return &Engine{
		newRand: newRand,
	}
}

// AvailableForToday returns the enabled exercises of today's type, minus the ones performed yesterday.
// When that leaves nothing, yesterday's exercises are allowed again.
func (e *Engine) AvailableForToday(catalog *exercises.Catalog, s settings.AppSettings, now time.Time) []exercises.Exercise {
	exType := exercises.Strength
	if s.IsSportDay(now) {
		exType = exercises.Mobility
	}

	pool := catalog.Enabled(exType)
	yesterday := pkg.AddDays(now, -1)
	available := slices.DeleteFunc(slices.Clone(pool), func(ex exercises.Exercise) bool {
		return ex.PerformedOn(yesterday)
	})
	if len(available) == 0 {
		return pool
	}
	return available
}

// GenerateTimes places count times in [start, end). When the window is too short to keep
// MinGapMinutes between all of them, the times are spread evenly instead.
// Returned times are sorted ascending.
func GenerateTimes(start, end time.Time, count int, rng *rand.Rand) []time.Time {
	windowMinutes := int(end.Sub(start) / time.Minute)
	if count <= 0 {
		return nil
	}
	if windowMinutes <= 0 {
		log.Warnf("empty active window [%s - %s], no times generated", start.Format(time.TimeOnly), end.Format(time.TimeOnly))
		return nil
	}

	times := make([]time.Time, 0, count)
	if windowMinutes < MinGapMinutes*count {
		interval := windowMinutes / count
		for i := range count {
			offset := i*interval + interval/2
			times = append(times, start.Add(time.Duration(offset)*time.Minute))
		}
		return times
	}

	for range count {
		var candidate time.Time
		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			candidate = start.Add(time.Duration(rng.IntN(windowMinutes)) * time.Minute)
			if farEnough(candidate, times) {
				break
			}
		}
		times = append(times, candidate)
	}

	slices.SortFunc(times, func(a, b time.Time) int {
		return a.Compare(b)
	})
	return times
}

func farEnough(candidate time.Time, accepted []time.Time) bool {
	for _, t := range accepted {
		gap := candidate.Sub(t)
		if gap < 0 {
			gap = -gap
		}
		if gap < MinGapMinutes*time.Minute {
			return false
		}
	}
	return true
}

// FutureOnly keeps the times strictly after now.
func FutureOnly(times []time.Time, now time.Time) []time.Time {
	future := make([]time.Time, 0, len(times))
	for _, t := range times {
		if t.After(now) {
			future = append(future, t)
		}
	}
	return future
}

// Assign picks n exercises by cycling through a shuffled pool, then shuffles the picks,
// so repeats are spread evenly and the order carries no meaning.
func Assign(pool []exercises.Exercise, n int, rng *rand.Rand) []exercises.Exercise {
	if len(pool) == 0 || n <= 0 {
		return nil
	}

	shuffled := slices.Clone(pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assigned := make([]exercises.Exercise, n)
	for i := range n {
		assigned[i] = shuffled[i%len(shuffled)]
	}
	rng.Shuffle(len(assigned), func(i, j int) {
		assigned[i], assigned[j] = assigned[j], assigned[i]
	})
	return assigned
}

// Build computes today's schedule. Slot ids are positions in the returned list.
func (e *Engine) Build(catalog *exercises.Catalog, s settings.AppSettings, now time.Time) []ScheduledExercise {
	pool := e.AvailableForToday(catalog, s, now)
	if len(pool) == 0 {
		log.Warnf("no %s exercises enabled, nothing to schedule", s.DayType(now))
		return nil
	}

	rng := e.newRand()
	start, end := s.WindowFor(now)
	times := FutureOnly(GenerateTimes(start, end, s.SnacksPerDay, rng), now)
	assigned := Assign(pool, len(times), rng)

	list := make([]ScheduledExercise, 0, len(times))
	for i, t := range times {
		list = append(list, ScheduledExercise{
			ExerciseID:     assigned[i].ID,
			ExerciseName:   assigned[i].Name,
			ScheduledTime:  t,
			NotificationID: i,
		})
	}
	return list
}
