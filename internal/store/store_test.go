package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

type testValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadJSON_Absent(t *testing.T) {
	s := NewMemory()

	var v testValue
	found, err := LoadJSON(context.Background(), s, "missing", &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, testValue{}, v)
}

func TestLoadJSON_SaveJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	require.NoError(t, SaveJSON(ctx, s, "k", testValue{Name: "squat", Count: 4}))

	var v testValue
	found, err := LoadJSON(ctx, s, "k", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, testValue{Name: "squat", Count: 4}, v)
}

func TestLoadJSON_Malformed(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, "k", []byte(`{"name": 12`)))

	var v testValue
	found, err := LoadJSON(ctx, s, "k", &v)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.False(t, found)
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	val := []byte("value")
	require.NoError(t, s.Set(ctx, "k", val))
	// stored value must not alias the caller's slice
	val[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "value", string(got))
}
