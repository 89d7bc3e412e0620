// Package store holds the in-memory entity stores. Each store is safe for
// concurrent use from the worker pool without external locking; granularity
// is single-key, there are no cross-key transactions.
package store

import "sync"

type Store[T any] struct {
	mu   sync.RWMutex
	data map[string]T
}

func New[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[string]T),
	}
}

// Get returns the entity stored under id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[id]
	return value, ok
}

// List returns a snapshot of all stored entities. Order is unspecified.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make([]T, 0, len(s.data))
	for _, value := range s.data {
		values = append(values, value)
	}
	return values
}

// Put stores entity under id, overwriting any previous value.
func (s *Store[T]) Put(id string, entity T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[id] = entity
}

// Remove deletes id and returns the removed entity if it was present.
func (s *Store[T]) Remove(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[id]
	if ok {
		delete(s.data, id)
	}
	return value, ok
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.data)
}
