package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by a Backend when no value is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Backend is the persistence port of the Store: a flat key/value space holding
// opaque documents, shaped like the browser's local storage.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryBackend keeps documents in process memory. It is the persistence fake
// for tests and the backend behind --ephemeral runs.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailWrites makes Set return WriteErr, for exercising the store's
	// log-and-continue path.
	FailWrites bool
	WriteErr   error
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		if m.WriteErr != nil {
			return m.WriteErr
		}
		return errors.New("memory backend: write refused")
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}
