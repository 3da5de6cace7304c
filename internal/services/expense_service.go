package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"expense-tracker/internal/cache"
	"expense-tracker/internal/core"
	applog "expense-tracker/internal/log"
	"expense-tracker/internal/metrics"
	"expense-tracker/internal/storage"
	"expense-tracker/internal/validation"
)

// Report names, also used as cache keys and metric labels.
const (
	ReportMonthly  = "monthly"
	ReportCategory = "category"
)

// ExpenseServiceConfig holds optional collaborators of the service.
type ExpenseServiceConfig struct {
	// SummaryCacheTTL bounds how long a computed report is reused (default: 5m)
	SummaryCacheTTL time.Duration

	// Now is the clock used to date new expenses (default: time.Now)
	Now func() time.Time

	Metrics MetricsRecorder
	Logger  *applog.Logger
}

// DefaultExpenseServiceConfig returns sensible defaults
func DefaultExpenseServiceConfig() ExpenseServiceConfig {
	return ExpenseServiceConfig{
		SummaryCacheTTL: 5 * time.Minute,
		Now:             time.Now,
		Metrics:         metrics.Nop{},
		Logger:          applog.Discard(),
	}
}

// ExpenseService owns the loaded record set and is the only writer to the
// record store. It is not safe for concurrent use.
type ExpenseService struct {
	store     storage.RecordStore
	records   []core.Expense
	summaries cache.Cache[string, []core.GroupTotal]
	now       func() time.Time
	metrics   MetricsRecorder
	logger    *applog.Logger
}

// NewExpenseService loads the record set from store once.
func NewExpenseService(ctx context.Context, store storage.RecordStore, config ExpenseServiceConfig) (*ExpenseService, error) {
	defaults := DefaultExpenseServiceConfig()
	if config.SummaryCacheTTL <= 0 {
		config.SummaryCacheTTL = defaults.SummaryCacheTTL
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}
	if config.Metrics == nil {
		config.Metrics = defaults.Metrics
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}

	records, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	if records == nil {
		records = []core.Expense{}
	}

	s := &ExpenseService{
		store:     store,
		records:   records,
		summaries: cache.NewLRU[string, []core.GroupTotal](2, config.SummaryCacheTTL),
		now:       config.Now,
		metrics:   config.Metrics,
		logger:    config.Logger.WithComponent(applog.ComponentExpense),
	}
	s.metrics.RecordLoaded(len(records))
	s.logger.InfoContext(ctx, "Expenses loaded", applog.FieldCount, len(records))
	return s, nil
}

// AddExpense validates amountInput, records a new expense dated today and
// rewrites the store. On any error neither memory nor store change.
func (s *ExpenseService) AddExpense(ctx context.Context, amountInput, category, description string) (core.Expense, error) {
	amount, err := core.ParseAmount(amountInput)
	if err != nil {
		s.metrics.RecordInvalidAmount()
		s.logger.InfoContext(ctx, "Rejected expense amount", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithErrorType(applog.ErrorTypeValidation).
			WithError(err).
			ToSlice()...)
		return core.Expense{}, err
	}

	e := core.Expense{
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        core.NewDate(s.now()),
	}
	if err := validation.GetValidator().Struct(e); err != nil {
		return core.Expense{}, fmt.Errorf("build expense: %w", err)
	}

	next := append(slices.Clip(s.records), e)
	err = s.store.Save(ctx, next)
	s.metrics.RecordSave(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save expenses", applog.NewFields().
			WithOperation(applog.OpSave).
			WithErrorType(applog.ErrorTypeStorage).
			WithError(err).
			ToSlice()...)
		return core.Expense{}, fmt.Errorf("save expenses: %w", err)
	}

	s.records = next
	s.summaries.Purge()
	s.metrics.RecordExpenseAdded(amount)
	s.logger.InfoContext(ctx, "Expense added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(amount.String(), category, e.Date.String()).
		ToSlice()...)

	return e, nil
}

// ListExpenses returns every record in creation order.
func (s *ExpenseService) ListExpenses() []core.Expense {
	return slices.Clone(s.records)
}

// MonthlySummary totals amounts per YYYY-MM in first-seen order.
func (s *ExpenseService) MonthlySummary(ctx context.Context) []core.GroupTotal {
	return s.summary(ctx, ReportMonthly, core.ByMonth)
}

// CategorySummary totals amounts per exact category in first-seen order.
func (s *ExpenseService) CategorySummary(ctx context.Context) []core.GroupTotal {
	return s.summary(ctx, ReportCategory, core.ByCategory)
}

func (s *ExpenseService) summary(ctx context.Context, report string, key core.KeyFunc) []core.GroupTotal {
	if rows, ok := s.summaries.Get(report); ok {
		s.metrics.RecordReport(report, true)
		s.logger.DebugContext(ctx, "Summary served from cache", applog.FieldReport, report, applog.FieldCacheHit, true)
		return slices.Clone(rows)
	}

	rows := core.Summarize(s.records, key)
	s.summaries.Set(report, rows)
	s.metrics.RecordReport(report, false)
	s.logger.DebugContext(ctx, "Summary computed",
		applog.FieldReport, report,
		applog.FieldRows, len(rows),
		applog.FieldCacheHit, false)
	return slices.Clone(rows)
}

// IsInvalidAmount reports whether err was caused by a rejected amount input.
func IsInvalidAmount(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount)
}
