package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDs(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// PayeeRepository defines data access for payees.
type PayeeRepository interface {
	Create(ctx context.Context, payee *domain.Payee) error
	GetByID(ctx context.Context, id string) (*domain.Payee, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Payee, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Category, error)
}

// TransactionRepository defines data access for transactions and their entries.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	Exists(ctx context.Context, tx Transaction, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	// UpdateHeader persists date and description. Entries are immutable once stored.
	UpdateHeader(ctx context.Context, tx Transaction, t *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	// BalanceAsOf sums the account's entries dated on or before asOf.
	BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
}

// RecurringRuleRepository defines data access for recurring rules.
type RecurringRuleRepository interface {
	Create(ctx context.Context, rule *domain.RecurringRule) error
	GetByID(ctx context.Context, id string) (*domain.RecurringRule, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.RecurringRule, error)
	List(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error)
	ListActive(ctx context.Context) ([]*domain.RecurringRule, error)
	UpdateLastOccurrence(ctx context.Context, tx Transaction, id string, last, updatedAt time.Time) error
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// CheckConsistency returns the sum of all transfer entries and the number of
	// transactions whose entry count does not match their type.
	CheckConsistency(ctx context.Context) (transferTotal decimal.Decimal, malformed int64, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Metrics records business counters.
type Metrics interface {
	RecordTransactionCreated(txType string)
	RecordNoOpenDayFound()
	RecordRecurringMaterialized(count int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordTransactionCreated(string) {}
func (NopMetrics) RecordNoOpenDayFound()           {}
func (NopMetrics) RecordRecurringMaterialized(int) {}
