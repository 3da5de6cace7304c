package core

import "github.com/shopspring/decimal"

// GroupTotal is one row of a report: a grouping key and the summed amount.
type GroupTotal struct {
	Key    string
	Amount decimal.Decimal
}

// KeyFunc extracts the grouping key of an expense.
type KeyFunc func(Expense) string

// ByMonth groups on the YYYY-MM prefix of the date.
func ByMonth(e Expense) string { return e.Date.MonthKey() }

// ByCategory groups on the exact category text.
func ByCategory(e Expense) string { return e.Category }

// Summarize sums amounts per key. Rows appear in the order their key is
// first seen in expenses; there is no sort step.
func Summarize(expenses []Expense, key KeyFunc) []GroupTotal {
	index := make(map[string]int)
	out := make([]GroupTotal, 0)
	for _, e := range expenses {
		k := key(e)
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, GroupTotal{Key: k, Amount: e.Amount})
			continue
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}
