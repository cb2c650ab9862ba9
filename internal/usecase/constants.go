package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// MaxTransactionAmount is the largest amount accepted for a single transaction (in decimal string)
	MaxTransactionAmount = "1000000000" // 1 billion

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultAccountCacheTTL is how long account reads stay cached
	DefaultAccountCacheTTL = 5 * time.Minute

	accountCacheKeyPrefix = "account:"
)
