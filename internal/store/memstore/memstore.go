// Package memstore provides an in-memory Store for tests and throwaway
// sessions.
package memstore

import (
	"context"
	"sync"

	"github.com/idilsaglam/syncpad/internal/store"
	"github.com/idilsaglam/syncpad/internal/task"
)

// Store keeps items in a map. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items map[string]task.Item
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{items: make(map[string]task.Item)}
}

// Put inserts or replaces the item.
func (s *Store) Put(_ context.Context, item task.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

// Delete removes the item with the given ID if present.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// ListAll returns every stored item in map order.
func (s *Store) ListAll(_ context.Context) ([]task.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]task.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Len reports the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
