package progression

import (
	"fmt"
	"time"

	"github.com/2beens/groove/internal/exercises"
)

const (
	RepsIncrement    = 2
	SecondsIncrement = 5
)

// Result tells what a completed session did to the prescribed count.
type Result struct {
	Progressed   bool `json:"progressed"`
	PreviousReps int  `json:"previousReps"`
	NewReps      int  `json:"newReps"`
}

// CompleteSession records a performed session. The count goes up only when the session
// was easy and at least the prescribed count was done; it never goes down here.
func CompleteSession(catalog *exercises.Catalog, id string, actualReps int, wasEasy bool, now time.Time) (exercises.Exercise, Result, error) {
	ex, err := catalog.ByID(id)
	if err != nil {
		return exercises.Exercise{}, Result{}, fmt.Errorf("complete session: %w", err)
	}

	result := Result{
		PreviousReps: ex.CurrentReps,
		NewReps:      ex.CurrentReps,
	}
	if wasEasy && actualReps >= ex.CurrentReps {
		increment := RepsIncrement
		if ex.IsTimed {
			increment = SecondsIncrement
		}
		result.NewReps = ex.CurrentReps + increment
		result.Progressed = true

		if _, err := catalog.AdjustReps(id, result.NewReps); err != nil {
			return exercises.Exercise{}, Result{}, fmt.Errorf("complete session: %w", err)
		}
	}

	updated, err := catalog.SetLastPerformed(id, now)
	if err != nil {
		return exercises.Exercise{}, Result{}, fmt.Errorf("complete session: %w", err)
	}
	return updated, result, nil
}

// MarkAsPerformed stamps today's date without touching the count.
func MarkAsPerformed(catalog *exercises.Catalog, id string, now time.Time) (exercises.Exercise, error) {
	ex, err := catalog.SetLastPerformed(id, now)
	if err != nil {
		return exercises.Exercise{}, fmt.Errorf("mark as performed: %w", err)
	}
	return ex, nil
}
