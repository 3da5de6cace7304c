package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func exp(amount, category string, date Date) Expense {
	return Expense{Amount: decimal.RequireFromString(amount), Category: category, Date: date}
}

func TestSummarizeKeepsFirstSeenOrder(t *testing.T) {
	expenses := []Expense{
		exp("10", "Food", "2025-03-01"),
		exp("5.25", "Transport", "2025-01-10"),
		exp("2.75", "Food", "2025-03-20"),
		exp("1", "food", "2025-02-01"),
	}

	months := Summarize(expenses, ByMonth)
	wantMonths := []GroupTotal{
		{Key: "2025-03", Amount: decimal.RequireFromString("12.75")},
		{Key: "2025-01", Amount: decimal.RequireFromString("5.25")},
		{Key: "2025-02", Amount: decimal.RequireFromString("1")},
	}
	assertTotals(t, months, wantMonths)

	cats := Summarize(expenses, ByCategory)
	wantCats := []GroupTotal{
		{Key: "Food", Amount: decimal.RequireFromString("12.75")},
		{Key: "Transport", Amount: decimal.RequireFromString("5.25")},
		{Key: "food", Amount: decimal.RequireFromString("1")},
	}
	assertTotals(t, cats, wantCats)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, ByCategory)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil summary, got %v", got)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	expenses := []Expense{exp("1", "A", "2025-01-01"), exp("2", "A", "2025-01-02")}
	Summarize(expenses, ByCategory)
	if !expenses[0].Amount.Equal(decimal.RequireFromString("1")) {
		t.Fatalf("input amount changed: %s", expenses[0].Amount)
	}
}

func assertTotals(t *testing.T, got, want []GroupTotal) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Key != want[i].Key || !got[i].Amount.Equal(want[i].Amount) {
			t.Fatalf("row %d: got %s=%s, want %s=%s", i, got[i].Key, got[i].Amount, want[i].Key, want[i].Amount)
		}
	}
}
