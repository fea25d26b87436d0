package storage

import (
	"errors"
	"sync"
)

// ErrUnavailable is what a failing Memory store returns.
var ErrUnavailable = errors.New("storage: unavailable")

// Memory is a map-backed Storage. It copies values in and out.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte

	failLoad bool
	failSave bool
	saves    int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad {
		return nil, ErrUnavailable
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return ErrUnavailable
	}
	m.data[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// FailLoads makes subsequent Loads return ErrUnavailable.
func (m *Memory) FailLoads(fail bool) {
	m.mu.Lock()
	m.failLoad = fail
	m.mu.Unlock()
}

// FailSaves makes subsequent Saves return ErrUnavailable.
func (m *Memory) FailSaves(fail bool) {
	m.mu.Lock()
	m.failSave = fail
	m.mu.Unlock()
}

// Saves counts successful Save calls.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
