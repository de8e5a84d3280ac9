package store

import (
	"context"
	"slices"
	"sync"
)

var _ Store = (*Memory)(nil)

type Memory struct {
	values map[string][]byte
	mutex  sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		values: map[string][]byte{},
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.values[key] = slices.Clone(value)
	return nil
}
