package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// CheckConsistency returns the sum of every transfer entry and the number of
// transactions whose entry count does not match their type.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, int64, error) {
	result, err := r.queries.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, 0, err
	}

	total, err := numericToDecimal(result.TransferTotal)
	if err != nil {
		return decimal.Zero, 0, err
	}

	return total, result.MalformedTransactions, nil
}
