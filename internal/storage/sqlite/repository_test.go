package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/core"
)

func newRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "expenses.db")
	repo, err := NewRepository(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func TestRepository_EmptyDatabaseLoadsEmpty(t *testing.T) {
	repo, _ := newRepo(t)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_SaveLoadRoundTrip(t *testing.T) {
	repo, path := newRepo(t)
	ctx := context.Background()
	want := []core.Expense{
		{Amount: decimal.RequireFromString("12.50"), Category: "Food", Description: "Lunch", Date: "2025-01-15"},
		{Amount: decimal.RequireFromString("0.10"), Category: "Transport", Description: "", Date: "2025-01-16"},
		{Amount: decimal.RequireFromString("3"), Category: "Food", Description: "Snack", Date: "2025-02-01"},
	}

	require.NoError(t, repo.Save(ctx, want))
	require.NoError(t, repo.Save(ctx, want[:2]))
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d: want %+v, got %+v", i, want[i], got[i])
	}

	require.NoError(t, repo.Close())
	reopened, err := NewRepository(path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	persisted, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, persisted, len(want))
}

func TestRepository_MalformedRowLoadsEmpty(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO expenses (position, amount, category, description, date) VALUES (0, 'abc', 'A', '', '2025-01-01')`)
	require.NoError(t, err)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
