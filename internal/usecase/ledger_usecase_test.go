package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	tests := []struct {
		name        string
		repo        *fakeLedgerRepository
		want        bool
		expectedErr error
	}{
		{
			name: "happy path balanced ledger",
			repo: &fakeLedgerRepository{transferTotal: decimal.Zero},
			want: true,
		},
		{
			name:        "repo error surfaces",
			repo:        &fakeLedgerRepository{err: errors.New("db down")},
			want:        false,
			expectedErr: errors.New("db down"),
		},
		{
			name:        "transfers do not net to zero",
			repo:        &fakeLedgerRepository{transferTotal: decimal.NewFromInt(10)},
			want:        false,
			expectedErr: ErrInconsistentLedger,
		},
		{
			name:        "malformed transaction",
			repo:        &fakeLedgerRepository{transferTotal: decimal.Zero, malformed: 1},
			want:        false,
			expectedErr: ErrInconsistentLedger,
		},
		{
			name:        "both broken",
			repo:        &fakeLedgerRepository{transferTotal: decimal.NewFromInt(-1), malformed: 3},
			want:        false,
			expectedErr: ErrInconsistentLedger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewLedgerUseCase(tt.repo)
			got, err := uc.CheckConsistency(context.Background())

			if tt.expectedErr != nil {
				if err == nil || err.Error() != tt.expectedErr.Error() {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Consistent != tt.want {
				t.Fatalf("CheckConsistency().Consistent = %v, want %v", got.Consistent, tt.want)
			}
		})
	}
}

func TestLedgerUseCase_ReportCarriesFigures(t *testing.T) {
	repo := &fakeLedgerRepository{transferTotal: decimal.RequireFromString("0.50"), malformed: 2}

	report, err := NewLedgerUseCase(repo).CheckConsistency(context.Background())
	if !errors.Is(err, ErrInconsistentLedger) {
		t.Fatalf("expected ErrInconsistentLedger, got %v", err)
	}

	if !report.TransferTotal.Equal(decimal.RequireFromString("0.5")) || report.MalformedTransactions != 2 {
		t.Fatalf("unexpected report %+v", report)
	}

	if repo.calls != 1 {
		t.Fatalf("expected CheckConsistency to call repository once, got %d", repo.calls)
	}
}

type fakeLedgerRepository struct {
	transferTotal decimal.Decimal
	malformed     int64
	err           error
	calls         int
}

func (f *fakeLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, int64, error) {
	f.calls++
	return f.transferTotal, f.malformed, f.err
}
