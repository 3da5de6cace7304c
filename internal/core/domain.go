package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and display layout of an expense date.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar day in YYYY-MM-DD form. It is kept as text so that
	// whatever a backing file holds is reported back unchanged.
	Date string

	Expense struct {
		Amount      decimal.Decimal `validate:"positive_amount"`
		Category    string
		Description string
		Date        Date `validate:"required,datetime=2006-01-02"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
)

// NewDate returns the local calendar day of t.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local date.
func Today() Date {
	return NewDate(time.Now())
}

// MonthKey returns the YYYY-MM prefix used to group expenses by month.
// Dates shorter than seven characters are returned whole.
func (d Date) MonthKey() string {
	s := string(d)
	if len(s) < 7 {
		return s
	}
	return s[:7]
}

func (d Date) String() string {
	return string(d)
}

// Equal reports whether two expenses carry the same values. Amounts are
// compared numerically, so 7 and 7.00 are equal.
func (e Expense) Equal(o Expense) bool {
	return e.Amount.Equal(o.Amount) &&
		e.Category == o.Category &&
		e.Description == o.Description &&
		e.Date == o.Date
}
