// Package jsonfile stores expense records as a single JSON array on disk.
//
// The file is rewritten in full on every save: the new content goes to a
// temporary file in the same directory which is then renamed over the target.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/storage"
	"expense-tracker/internal/validation"
)

// DefaultFilename is used when no path is configured.
const DefaultFilename = "expenses.json"

var _ storage.RecordStore = (*Store)(nil)

// record is the on-disk shape. Pointers distinguish a missing key from an
// empty value.
type record struct {
	Amount      *json.Number `json:"amount"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	Date        *string      `json:"date"`
}

type Store struct {
	path   string
	logger *applog.Logger
}

func New(path string, logger *applog.Logger) *Store {
	if path == "" {
		path = DefaultFilename
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Store{path: path, logger: logger.WithComponent(applog.ComponentStorage)}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file. A missing file or content that does not
// decode into valid records yields an empty sequence.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.DebugContext(ctx, "Backing file not found, starting empty", applog.FieldPath, s.path)
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	expenses, err := decode(data)
	if err != nil {
		s.logger.WarnContext(ctx, "Backing file is malformed, starting empty",
			applog.FieldPath, s.path,
			applog.FieldError, err)
		return []core.Expense{}, nil
	}

	s.logger.DebugContext(ctx, "Loaded expenses", applog.FieldPath, s.path, applog.FieldCount, len(expenses))
	return expenses, nil
}

// Save serializes records and atomically replaces the backing file.
func (s *Store) Save(ctx context.Context, records []core.Expense) error {
	data, err := encode(records)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := atomicWriteFile(s.path, data); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.logger.DebugContext(ctx, "Saved expenses", applog.FieldPath, s.path, applog.FieldCount, len(records))
	return nil
}

func decode(data []byte) ([]core.Expense, error) {
	var rows []record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, err
	}

	v := validation.GetValidator()
	out := make([]core.Expense, 0, len(rows))
	for i, r := range rows {
		if r.Amount == nil || r.Category == nil || r.Description == nil || r.Date == nil {
			return nil, fmt.Errorf("record %d: missing field", i)
		}
		amount, err := decimal.NewFromString(r.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("record %d: amount: %w", i, err)
		}
		e := core.Expense{
			Amount:      amount,
			Category:    *r.Category,
			Description: *r.Description,
			Date:        core.Date(*r.Date),
		}
		if err := v.Struct(e); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func encode(records []core.Expense) ([]byte, error) {
	rows := make([]record, len(records))
	for i, e := range records {
		amount := json.Number(e.Amount.String())
		category, description, date := e.Category, e.Description, string(e.Date)
		rows[i] = record{Amount: &amount, Category: &category, Description: &description, Date: &date}
	}
	return json.MarshalIndent(rows, "", "    ")
}

func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op once renamed
	}()

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
