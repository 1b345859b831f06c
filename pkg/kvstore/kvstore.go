// Package kvstore is a string-keyed store of JSON-serializable values, the
// persistence slot behind the session identity and the local snapshot
// collections. Two implementations: an in-memory map and a Postgres table.
package kvstore

import (
	"encoding/json"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	// Get unmarshals the stored value into dest.
	Get(key string, dest interface{}) error
	// Set marshals value and stores it under key, replacing any prior value.
	Set(key string, value interface{}) error
	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string) error
}

type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns an in-memory Store, used in tests and when no database
// is configured.
func NewMemory() Store {
	return &memoryStore{values: make(map[string][]byte)}
}

func (s *memoryStore) Get(key string, dest interface{}) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (s *memoryStore) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}
