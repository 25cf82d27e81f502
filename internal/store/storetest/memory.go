// Package storetest provides an in-memory store.Storage for tests.
package storetest

import (
	"context"
	"maps"
	"sync"
)

// Memory keeps the record in memory. LoadErr and SaveErr, when set, are
// returned by the corresponding calls.
type Memory struct {
	mu      sync.Mutex
	data    map[string]string
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemory returns a storage seeded with data (nil means nothing persisted
// yet).
func NewMemory(data map[string]string) *Memory {
	m := &Memory{}
	if data != nil {
		m.data = maps.Clone(data)
	}
	return m
}

func (m *Memory) LoadData(ctx context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return maps.Clone(m.data), nil
}

func (m *Memory) SaveData(ctx context.Context, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = maps.Clone(data)
	m.saves++
	return nil
}

// Data returns a copy of the persisted record.
func (m *Memory) Data() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data)
}

// Saves returns the number of successful SaveData calls.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetSaveErr changes SaveErr under the lock.
func (m *Memory) SetSaveErr(err error) {
	m.mu.Lock()
	m.SaveErr = err
	m.mu.Unlock()
}
