package exercises

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/2beens/groove/pkg"
)

// Type decides on which kind of day an exercise is offered:
// strength on rest days, mobility on sport days.
type Type string

const (
	Strength Type = "strength"
	Mobility Type = "mobility"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Strength, Mobility:
		return true
	default:
		return false
	}
}

// ParseType is lenient: case is ignored and anything unknown is treated as strength.
func ParseType(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return Strength
	}
	return t
}

const (
	DefaultReps    = 4
	DefaultSeconds = 30
	MinReps        = 1
)

// Exercise is a single snack-able movement plus its progression state.
// CurrentReps holds seconds when IsTimed is set. IsBilateral is informational only.
type Exercise struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Type              Type       `json:"type"`
	CurrentReps       int        `json:"currentReps"`
	IsTimed           bool       `json:"isTimed"`
	IsBilateral       bool       `json:"isBilateral"`
	IsEnabled         bool       `json:"isEnabled"`
	RelatedStretch    string     `json:"relatedStretch"`
	LastPerformedDate *time.Time `json:"lastPerformedDate"`
}

// Is reports identity; exercises are equal when their ids are.
func (e Exercise) Is(other Exercise) bool {
	return e.ID == other.ID
}

// Unit is "s" for timed exercises and "reps" otherwise.
func (e Exercise) Unit() string {
	if e.IsTimed {
		return "s"
	}
	return "reps"
}

// PerformedOn reports whether the exercise was last performed on the calendar day of t.
func (e Exercise) PerformedOn(t time.Time) bool {
	if e.LastPerformedDate == nil {
		return false
	}
	return pkg.SameDay(t, *e.LastPerformedDate)
}

func (e Exercise) clone() Exercise {
	if e.LastPerformedDate != nil {
		d := *e.LastPerformedDate
		e.LastPerformedDate = &d
	}
	return e
}

// UnmarshalJSON keeps older persisted data loadable:
// missing isEnabled means enabled, reps below 1 are clamped and unknown types become strength.
func (e *Exercise) UnmarshalJSON(data []byte) error {
	type exerciseAlias Exercise
	aux := struct {
		*exerciseAlias
		Type      string `json:"type"`
		IsEnabled *bool  `json:"isEnabled"`
	}{
		exerciseAlias: (*exerciseAlias)(e),
	}

	*e = Exercise{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	e.Type = ParseType(aux.Type)
	e.IsEnabled = aux.IsEnabled == nil || *aux.IsEnabled
	if e.CurrentReps < MinReps {
		e.CurrentReps = MinReps
	}

	return nil
}
