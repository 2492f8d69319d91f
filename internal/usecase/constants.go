package usecase

import "time"

const (
	// DefaultPageSize and MaxPageSize bound list pagination.
	DefaultPageSize = 20
	MaxPageSize     = 100

	// AggregateCacheTTL bounds how long a derived aggregate may live in
	// cache; every installment write invalidates it explicitly anyway.
	AggregateCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
