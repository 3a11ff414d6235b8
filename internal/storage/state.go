package storage

import (
	"context"
	"sync"
)

type stateKey struct {
	userID int64
	key    string
}

// StateStorage keeps journey state values in memory.
type StateStorage struct {
	mu     sync.RWMutex
	values map[stateKey]string
}

// NewStateStorage creates a new StateStorage.
func NewStateStorage() *StateStorage {
	return &StateStorage{
		values: make(map[stateKey]string),
	}
}

// Get returns the value stored under key for the user.
func (s *StateStorage) Get(_ context.Context, userID int64, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[stateKey{userID, key}]
	return v, ok, nil
}

// SetMany stores all values under one lock.
func (s *StateStorage) SetMany(_ context.Context, userID int64, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[stateKey{userID, k}] = v
	}
	return nil
}
