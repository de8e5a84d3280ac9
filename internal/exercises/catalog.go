package exercises

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/2beens/groove/pkg"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrDuplicateID      = errors.New("exercise id already exists")
	ErrInvalidExercise  = errors.New("invalid exercise")
)

// Catalog holds the exercises keyed by id. Listing follows insertion order.
// It is not safe for concurrent use; callers serialize access.
type Catalog struct {
	exercises map[string]*Exercise
	order     []string
}

// NewCatalog builds a catalog from a list. For duplicated ids the first entry wins.
func NewCatalog(list []Exercise) *Catalog {
	c := &Catalog{
		exercises: make(map[string]*Exercise, len(list)),
		order:     make([]string, 0, len(list)),
	}
	for _, ex := range list {
		if _, ok := c.exercises[ex.ID]; ok || ex.ID == "" {
			continue
		}
		ex := ex.clone()
		c.exercises[ex.ID] = &ex
		c.order = append(c.order, ex.ID)
	}
	return c
}

func NewSeededCatalog() *Catalog {
	return NewCatalog(Seed())
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) ByID(id string) (Exercise, error) {
	ex, ok := c.exercises[id]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	return ex.clone(), nil
}

func (c *Catalog) All() []Exercise {
	return c.filter(func(Exercise) bool { return true })
}

func (c *Catalog) OfType(t Type) []Exercise {
	return c.filter(func(ex Exercise) bool { return ex.Type == t })
}

// Enabled returns the enabled exercises of the given type.
func (c *Catalog) Enabled(t Type) []Exercise {
	return c.filter(func(ex Exercise) bool { return ex.Type == t && ex.IsEnabled })
}

func (c *Catalog) filter(keep func(Exercise) bool) []Exercise {
	list := make([]Exercise, 0, len(c.order))
	for _, id := range c.order {
		ex := c.exercises[id]
		if keep(*ex) {
			list = append(list, ex.clone())
		}
	}
	return list
}

func (c *Catalog) SetEnabled(id string, enabled bool) (Exercise, error) {
	return c.mutate(id, func(ex *Exercise) {
		ex.IsEnabled = enabled
	})
}

// AdjustReps is the explicit manual edit; the count never goes below MinReps.
func (c *Catalog) AdjustReps(id string, newReps int) (Exercise, error) {
	return c.mutate(id, func(ex *Exercise) {
		ex.CurrentReps = max(newReps, MinReps)
	})
}

func (c *Catalog) SetLastPerformed(id string, date time.Time) (Exercise, error) {
	return c.mutate(id, func(ex *Exercise) {
		d := pkg.DateOnly(date)
		ex.LastPerformedDate = &d
	})
}

// ResetProgress puts the starting count back and forgets when it was last performed.
func (c *Catalog) ResetProgress(id string) (Exercise, error) {
	return c.mutate(id, func(ex *Exercise) {
		ex.CurrentReps = seedReps(ex.ID, ex.IsTimed)
		ex.LastPerformedDate = nil
	})
}

// ClearLastPerformed forgets the last performed date of all exercises of a type,
// making them eligible again. Returns how many were cleared.
func (c *Catalog) ClearLastPerformed(t Type) int {
	cleared := 0
	for _, id := range c.order {
		ex := c.exercises[id]
		if ex.Type == t && ex.LastPerformedDate != nil {
			ex.LastPerformedDate = nil
			cleared++
		}
	}
	return cleared
}

// Add appends a user created exercise.
func (c *Catalog) Add(ex Exercise) (Exercise, error) {
	ex.ID = strings.TrimSpace(ex.ID)
	ex.Name = strings.TrimSpace(ex.Name)
	if ex.ID == "" || ex.Name == "" {
		return Exercise{}, fmt.Errorf("%w: id and name are required", ErrInvalidExercise)
	}
	if !ex.Type.IsValid() {
		return Exercise{}, fmt.Errorf("%w: unknown type [%s]", ErrInvalidExercise, ex.Type)
	}
	if _, ok := c.exercises[ex.ID]; ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrDuplicateID, ex.ID)
	}

	if ex.CurrentReps < MinReps {
		if ex.IsTimed {
			ex.CurrentReps = DefaultSeconds
		} else {
			ex.CurrentReps = DefaultReps
		}
	}

	stored := ex.clone()
	c.exercises[ex.ID] = &stored
	c.order = append(c.order, ex.ID)
	return stored.clone(), nil
}

// Update replaces the stored exercise with the same id.
func (c *Catalog) Update(ex Exercise) error {
	if _, ok := c.exercises[ex.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, ex.ID)
	}
	ex.CurrentReps = max(ex.CurrentReps, MinReps)
	stored := ex.clone()
	c.exercises[ex.ID] = &stored
	return nil
}

func (c *Catalog) Remove(id string) error {
	if _, ok := c.exercises[id]; !ok {
		return fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	delete(c.exercises, id)
	c.order = slices.DeleteFunc(c.order, func(existing string) bool {
		return existing == id
	})
	return nil
}

func (c *Catalog) mutate(id string, f func(ex *Exercise)) (Exercise, error) {
	ex, ok := c.exercises[id]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	f(ex)
	return ex.clone(), nil
}
