package memory

import (
	"context"
	"slices"
	"sync"

	"expense-tracker/internal/core"
	"expense-tracker/internal/storage"
)

var _ storage.RecordStore = (*Store)(nil)

// Store holds records for the lifetime of the process only.
type Store struct {
	mu    sync.Mutex
	items []core.Expense
	saves int
}

func New(seed ...core.Expense) *Store {
	return &Store{items: slices.Clone(seed)}
}

// Load returns a copy of the held records.
func (s *Store) Load(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Save replaces the held records with a copy of records.
func (s *Store) Save(_ context.Context, records []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(records)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
