package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInconsistentLedger is returned when the ledger is not balanced.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: transfers do not net to zero or a transaction is malformed")
)

// ConsistencyReport is the outcome of a ledger check.
type ConsistencyReport struct {
	Consistent            bool
	TransferTotal         decimal.Decimal
	MalformedTransactions int64
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies that all transfers net to zero and that every stored
// transaction has the entry count its type requires. The report is filled in
// even when ErrInconsistentLedger is returned.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (ConsistencyReport, error) {
	transferTotal, malformed, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return ConsistencyReport{}, err
	}

	report := ConsistencyReport{
		TransferTotal:         transferTotal,
		MalformedTransactions: malformed,
	}

	// Incomes and expenses move money across the ledger boundary, so only
	// transfers are required to cancel out.
	if !transferTotal.IsZero() || malformed > 0 {
		return report, ErrInconsistentLedger
	}

	report.Consistent = true
	return report, nil
}
