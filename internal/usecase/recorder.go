package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/iho/budgetledger/internal/domain"
)

// recorder stores validated transactions together with their outbox events.
// It is shared by the write paths of TransactionUseCase and RecurringUseCase.
type recorder struct {
	accountRepo AccountRepository
	txRepo      TransactionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	clock       domain.Clock
}

// insert checks that every entry posts to an existing account of the same currency,
// refuses duplicate ids and writes t and its outbox event inside tx.
func (r recorder) insert(ctx context.Context, tx Transaction, t *domain.Transaction) error {
	if err := r.checkAccounts(ctx, tx, t); err != nil {
		return err
	}

	exists, err := r.txRepo.Exists(ctx, tx, t.ID())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTransaction, t.ID())
	}

	if err := r.txRepo.Create(ctx, tx, t); err != nil {
		return err
	}

	return r.emit(ctx, tx, domain.EventTypeTransactionRecorded, t)
}

func (r recorder) checkAccounts(ctx context.Context, tx Transaction, t *domain.Transaction) error {
	ids := accountIDsOf(t)

	accounts, err := r.accountRepo.GetByIDs(ctx, tx, ids)
	if err != nil {
		return err
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	for _, e := range t.Entries() {
		account, ok := byID[e.AccountID()]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, e.AccountID())
		}
		if err := account.Accepts(e.Amount()); err != nil {
			return err
		}
	}

	return nil
}

func (r recorder) emit(ctx context.Context, tx Transaction, eventType string, t *domain.Transaction) error {
	if r.outboxRepo == nil {
		return nil
	}

	event, err := domain.NewTransactionOutboxEvent(r.idGen.Generate(), eventType, t, r.clock.Now().UTC())
	if err != nil {
		return err
	}

	return r.outboxRepo.Create(ctx, tx, event)
}

// accountIDsOf returns the distinct account ids of t in sorted order.
func accountIDsOf(t *domain.Transaction) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, e := range t.Entries() {
		if !seen[e.AccountID()] {
			seen[e.AccountID()] = true
			ids = append(ids, e.AccountID())
		}
	}

	sort.Strings(ids)
	return ids
}
