// Package sqlite keeps expense records in a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/storage"
	"expense-tracker/internal/validation"

	_ "modernc.org/sqlite"
)

var _ storage.RecordStore = (*Repository)(nil)

type Repository struct {
	db     *sql.DB
	path   string
	logger *applog.Logger
}

func NewRepository(dbPath string, logger *applog.Logger) (*Repository, error) {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer, one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{
		db:     db,
		path:   dbPath,
		logger: logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load returns every stored expense in insertion order. Rows that cannot be
// read back as valid records make the whole set count as unreadable, which
// yields an empty sequence.
func (r *Repository) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount, category, description, date FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	v := validation.GetValidator()
	expenses := []core.Expense{}
	for rows.Next() {
		var amount, category, description, date string
		if err := rows.Scan(&amount, &category, &description, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			r.logger.WarnContext(ctx, "Stored expense is malformed, starting empty",
				applog.FieldPath, r.path, applog.FieldError, err)
			return []core.Expense{}, nil
		}
		e := core.Expense{Amount: d, Category: category, Description: description, Date: core.Date(date)}
		if err := v.Struct(e); err != nil {
			r.logger.WarnContext(ctx, "Stored expense is malformed, starting empty",
				applog.FieldPath, r.path, applog.FieldError, err)
			return []core.Expense{}, nil
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	r.logger.DebugContext(ctx, "Loaded expenses", applog.FieldPath, r.path, applog.FieldCount, len(expenses))
	return expenses, nil
}

// Save replaces the stored set with records inside one transaction.
func (r *Repository) Save(ctx context.Context, records []core.Expense) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (position, amount, category, description, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range records {
		if _, err = stmt.ExecContext(ctx, i, e.Amount.String(), e.Category, e.Description, string(e.Date)); err != nil {
			return fmt.Errorf("insert expense %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	r.logger.DebugContext(ctx, "Saved expenses", applog.FieldPath, r.path, applog.FieldCount, len(records))
	return nil
}
