package exercises

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeed(t *testing.T) {
	seed := Seed()
	assert.Len(t, seed, 30)

	ids := map[string]bool{}
	types := map[Type]int{}
	for _, ex := range seed {
		assert.False(t, ids[ex.ID], "duplicate id %s", ex.ID)
		ids[ex.ID] = true
		types[ex.Type]++

		assert.NotEmpty(t, ex.Name)
		assert.True(t, ex.IsEnabled)
		assert.Nil(t, ex.LastPerformedDate)
		assert.GreaterOrEqual(t, ex.CurrentReps, 1)

		if !ex.IsBilateral && ex.Type == Strength {
			if ex.IsTimed {
				assert.LessOrEqual(t, ex.CurrentReps, DefaultSeconds, ex.ID)
			} else {
				assert.Equal(t, DefaultReps, ex.CurrentReps, ex.ID)
			}
		}
		if ex.Type == Strength && ex.IsBilateral && !ex.IsTimed {
			assert.Less(t, ex.CurrentReps, DefaultReps, ex.ID)
		}
	}

	assert.Positive(t, types[Strength])
	assert.Positive(t, types[Mobility])

	// deterministic
	assert.Equal(t, seed, Seed())
}

func TestSeedReps(t *testing.T) {
	assert.Equal(t, 4, seedReps("push_ups", false))
	assert.Equal(t, 2, seedReps("bulgarian_split_squats", false))
	assert.Equal(t, 30, seedReps("plank", true))
	assert.Equal(t, DefaultReps, seedReps("user_made", false))
	assert.Equal(t, DefaultSeconds, seedReps("user_made_timed", true))
}
