// Package storage defines the record store port shared by every backend.
package storage

import (
	"context"

	"expense-tracker/internal/core"
)

// RecordStore persists the full, ordered set of expense records.
//
// Load never fails because the backing store is absent or unreadable as data;
// that case yields an empty sequence. Save replaces the stored sequence as a
// whole, so a reader observes either the previous or the new state.
type RecordStore interface {
	Load(ctx context.Context) ([]core.Expense, error)
	Save(ctx context.Context, records []core.Expense) error
}
