package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	*Memory
	gets   int
	setErr error
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	return c.Memory.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	if c.setErr != nil {
		return c.setErr
	}
	return c.Memory.Set(ctx, key, value)
}

func TestCached_ReadThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Memory: NewMemory()}
	require.NoError(t, inner.Memory.Set(ctx, "k", []byte("v1")))

	c := NewCached(inner, 1024*1024)

	for i := 0; i < 3; i++ {
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v1", string(got))
	}
	assert.Equal(t, 1, inner.gets)

	_, err := c.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCached_WriteThrough(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Memory: NewMemory()}
	c := NewCached(inner, 1024*1024)

	require.NoError(t, c.Set(ctx, "k", []byte("v1")))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
	assert.Equal(t, 0, inner.gets)

	stored, err := inner.Memory.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(stored))

	// failed write must not leave the old value cached
	inner.setErr = errors.New("disk full")
	require.Error(t, c.Set(ctx, "k", []byte("v2")))
	inner.setErr = nil

	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
	assert.Equal(t, 1, inner.gets)
}
