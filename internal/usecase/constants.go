package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds the RecordEntry transaction so a
	// stalled commit cannot hold the account row lock indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultPageSize is applied when a listing request has no limit.
	DefaultPageSize = 20

	// MaxPageSize caps listing requests.
	MaxPageSize = 100
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
