package services

import "github.com/shopspring/decimal"

// MetricsRecorder receives one call per observable service event.
type MetricsRecorder interface {
	RecordExpenseAdded(amount decimal.Decimal)
	RecordInvalidAmount()
	RecordReport(report string, cached bool)
	RecordSave(err error)
	RecordLoaded(count int)
}
