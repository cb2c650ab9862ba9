package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
	"github.com/iho/budgetledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. A transaction is
// stored as one header row plus one row per entry, in entry order.
type TransactionRepository struct {
	queries *generated.Queries
	clock   domain.Clock
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{
		queries: generated.New(db),
		clock:   domain.SystemClock{},
	}
}

// Create writes the header and entries of t.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	queries := queriesFor(tx)
	s := t.Snapshot()
	now := timeToPgTimestamptz(r.clock.Now().UTC())

	err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:          s.ID,
		Type:        string(s.Type),
		Date:        dayToPgDate(s.Date),
		Description: s.Description,
		PayeeID:     textOrNull(s.PayeeID),
		CategoryID:  textOrNull(s.CategoryID),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return mapWriteError(err, s.ID)
	}

	for i, e := range s.Entries {
		err := queries.CreateEntry(ctx, generated.CreateEntryParams{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			AccountID:     e.AccountID,
			Position:      int32(i),
			Amount:        decimalToNumeric(e.Amount),
			Currency:      e.Currency,
		})
		if err != nil {
			return mapWriteError(err, s.ID)
		}
	}

	return nil
}

func mapWriteError(err error, id string) error {
	switch {
	case hasPgCode(err, pgErrUniqueViolation):
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTransaction, id)
	case hasPgCode(err, pgErrForeignKeyViolation):
		return fmt.Errorf("transaction %s references a missing row: %w", id, err)
	}
	return err
}

// Exists reports whether a transaction with id is stored.
func (r *TransactionRepository) Exists(ctx context.Context, tx usecase.Transaction, id string) (bool, error) {
	return queriesFor(tx).TransactionExists(ctx, id)
}

// GetByID loads a transaction with its entries.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.load(ctx, r.queries, id, false)
}

// GetByIDForUpdate loads a transaction and locks its header row until tx ends.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	return r.load(ctx, queriesFor(tx), id, true)
}

func (r *TransactionRepository) load(ctx context.Context, queries *generated.Queries, id string, forUpdate bool) (*domain.Transaction, error) {
	var (
		row generated.Transaction
		err error
	)

	if forUpdate {
		row, err = queries.GetTransactionByIDForUpdate(ctx, id)
	} else {
		row, err = queries.GetTransactionByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	entries, err := queries.GetEntriesByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	return rowToTransaction(row, entries)
}

// UpdateHeader persists the date and description of t.
func (r *TransactionRepository) UpdateHeader(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	n, err := queriesFor(tx).UpdateTransactionHeader(ctx, generated.UpdateTransactionHeaderParams{
		ID:          t.ID(),
		Date:        dayToPgDate(t.Date()),
		Description: t.Description(),
		UpdatedAt:   timeToPgTimestamptz(r.clock.Now().UTC()),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByAccount lists transactions with an entry on accountID, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, generated.ListTransactionsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []*domain.Transaction{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	entryRows, err := r.queries.GetEntriesByTransactions(ctx, ids)
	if err != nil {
		return nil, err
	}

	byTransaction := make(map[string][]generated.Entry, len(rows))
	for _, e := range entryRows {
		byTransaction[e.TransactionID] = append(byTransaction[e.TransactionID], e)
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := rowToTransaction(row, byTransaction[row.ID])
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// BalanceAsOf sums the entries of accountID dated on or before asOf.
func (r *TransactionRepository) BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	total, err := r.queries.GetAccountBalanceAsOf(ctx, generated.GetAccountBalanceAsOfParams{
		AccountID: accountID,
		Date:      dayToPgDate(asOf),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total)
}

func rowToTransaction(row generated.Transaction, entries []generated.Entry) (*domain.Transaction, error) {
	s := domain.TransactionSnapshot{
		ID:          row.ID,
		Type:        domain.TransactionType(row.Type),
		Date:        pgDateToDay(row.Date),
		Description: row.Description,
		PayeeID:     row.PayeeID.String,
		CategoryID:  row.CategoryID.String,
		Entries:     make([]domain.EntrySnapshot, 0, len(entries)),
	}

	for _, e := range entries {
		amount, err := numericToDecimal(e.Amount)
		if err != nil {
			return nil, err
		}

		s.Entries = append(s.Entries, domain.EntrySnapshot{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			AccountID:     e.AccountID,
			Amount:        amount,
			Currency:      e.Currency,
		})
	}

	t, err := domain.RestoreTransaction(s)
	if err != nil {
		return nil, fmt.Errorf("restore transaction %s: %w", row.ID, err)
	}

	return t, nil
}
