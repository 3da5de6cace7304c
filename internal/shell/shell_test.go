package shell

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker/internal/core"
	"expense-tracker/internal/services"
	"expense-tracker/internal/storage/memory"
)

func newService(t *testing.T, seed ...core.Expense) *services.ExpenseService {
	t.Helper()
	cfg := services.DefaultExpenseServiceConfig()
	cfg.Now = func() time.Time { return time.Date(2025, time.June, 2, 12, 0, 0, 0, time.Local) }
	svc, err := services.NewExpenseService(context.Background(), memory.New(seed...), cfg)
	require.NoError(t, err)
	return svc
}

func run(t *testing.T, svc ExpenseService, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(svc, strings.NewReader(input), &out, nil).Run(context.Background())
	return out.String(), err
}

func TestShell_ScenarioTranscript(t *testing.T) {
	svc := newService(t)
	input := strings.Join([]string{
		"1", "12.50", "Food", "Lunch",
		"1", "-5", "Food", "bad",
		"1", "7.00", "Transport", "Bus",
		"2",
		"4",
		"5",
	}, "\n") + "\n"

	out, err := run(t, svc, input)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Expense added successfully!"))
	assert.Contains(t, out, "Error: invalid amount: must be positive\n")
	assert.Contains(t, out, "Amount: 12.5, Category: Food, Description: Lunch, Date: 2025-06-02\n")
	assert.Contains(t, out, "Amount: 7, Category: Transport, Description: Bus, Date: 2025-06-02\n")
	assert.Contains(t, out, "\nCategory-wise Summary:\nFood: $12.50\nTransport: $7.00\n")
	assert.True(t, strings.HasSuffix(out, "Choose an option: Exiting Expense Tracker. Goodbye!\n"))
	assert.Len(t, svc.ListExpenses(), 2)
}

func TestShell_MenuLayout(t *testing.T) {
	out, err := run(t, newService(t), "5\n")
	require.NoError(t, err)

	want := "\nExpense Tracker\n" +
		"1. Add Expense\n" +
		"2. View Expenses\n" +
		"3. Monthly Summary\n" +
		"4. Category Summary\n" +
		"5. Exit\n" +
		"Choose an option: " +
		"Exiting Expense Tracker. Goodbye!\n"
	assert.Equal(t, want, out)
}

func TestShell_ViewEmpty(t *testing.T) {
	out, err := run(t, newService(t), "2\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "No expenses recorded yet.\n")
	assert.NotContains(t, out, "Amount:")
}

func TestShell_MonthlySummary(t *testing.T) {
	svc := newService(t,
		core.Expense{Amount: mustAmount(t, "3.5"), Category: "A", Date: "2025-02-10"},
		core.Expense{Amount: mustAmount(t, "1"), Category: "B", Date: "2025-01-03"},
		core.Expense{Amount: mustAmount(t, "1.25"), Category: "A", Date: "2025-02-11"},
	)

	out, err := run(t, svc, "3\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "\nMonthly Summary:\n2025-02: $4.75\n2025-01: $1.00\n")
}

func TestShell_EmptySummaryPrintsHeaderOnly(t *testing.T) {
	out, err := run(t, newService(t), "3\n4\n5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "\nMonthly Summary:\n\nExpense Tracker\n")
	assert.Contains(t, out, "\nCategory-wise Summary:\n\nExpense Tracker\n")
}

func TestShell_InvalidOptionReprompts(t *testing.T) {
	out, err := run(t, newService(t), "9\n\nadd\n5\n")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Invalid option. Please try again.\n"))
	assert.Equal(t, 4, strings.Count(out, "Choose an option: "))
}

func TestShell_ChoiceWhitespaceIgnored(t *testing.T) {
	out, err := run(t, newService(t), " 5 \r\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye!")
}

func TestShell_EndOfInputStopsQuietly(t *testing.T) {
	svc := newService(t)

	out, err := run(t, svc, "1\n12")
	require.NoError(t, err)
	assert.NotContains(t, out, "Goodbye!")
	assert.Empty(t, svc.ListExpenses())

	_, err = run(t, svc, "")
	assert.NoError(t, err)
}

func TestShell_FinalLineWithoutNewline(t *testing.T) {
	svc := newService(t)
	out, err := run(t, svc, "1\n4\nFood\nSnack")
	require.NoError(t, err)
	assert.Contains(t, out, "Expense added successfully!")
	require.Len(t, svc.ListExpenses(), 1)
	assert.Equal(t, "Snack", svc.ListExpenses()[0].Description)
}

func TestShell_KeepsFieldTextAsEntered(t *testing.T) {
	svc := newService(t)
	_, err := run(t, svc, "1\n2\n  Food \n\n5\n")
	require.NoError(t, err)
	require.Len(t, svc.ListExpenses(), 1)
	assert.Equal(t, "  Food ", svc.ListExpenses()[0].Category)
	assert.Equal(t, "", svc.ListExpenses()[0].Description)
}

type failingService struct {
	ExpenseService
}

func (failingService) AddExpense(context.Context, string, string, string) (core.Expense, error) {
	return core.Expense{}, errors.New("save expenses: disk full")
}

func TestShell_StorageErrorStopsLoop(t *testing.T) {
	out, err := run(t, failingService{ExpenseService: newService(t)}, "1\n5\nFood\nLunch\n5\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NotContains(t, out, "Goodbye!")
}

func mustAmount(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := core.ParseAmount(s)
	require.NoError(t, err)
	return d
}
