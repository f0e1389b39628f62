package storage

import (
	"context"
	"sync"
)

type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

func (m *Memory) GetItem(_ context.Context, key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	val, ok := m.items[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (m *Memory) SetItem(_ context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

func (m *Memory) RemoveItem(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
