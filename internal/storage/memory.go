package storage

import (
	"context"
	"sync"

	"github.com/Veraticus/budget/internal/service"
)

var _ service.Storage = (*MemoryStorage)(nil)

// MemoryStorage keeps blobs in a map. It backs tests and dry runs.
type MemoryStorage struct {
	values map[string][]byte
	saves  []string
	mu     sync.Mutex
	closed bool
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Load returns a copy of the blob stored under key.
func (m *MemoryStorage) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateContext(ctx); err != nil {
		return nil, false, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, ErrClosed
	}

	blob, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, blob...), true, nil
}

// Save stores a copy of blob under key.
func (m *MemoryStorage) Save(ctx context.Context, key string, blob []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateBlob(blob); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	m.values[key] = append([]byte{}, blob...)
	m.saves = append(m.saves, key)
	return nil
}

// Saves returns the keys of every successful Save, in call order.
func (m *MemoryStorage) Saves() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.saves...)
}

// Close marks the storage closed; later calls fail with ErrClosed.
func (m *MemoryStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
