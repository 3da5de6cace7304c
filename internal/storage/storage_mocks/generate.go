package storage_mocks

//go:generate mockgen -destination=storage_mocks.go -package=storage_mocks expense-tracker/internal/storage RecordStore

// This file contains the go:generate directive to generate mocks for storage interfaces.
// To regenerate the mocks, run:
//   go generate ./internal/storage/storage_mocks
