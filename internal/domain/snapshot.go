package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntrySnapshot is the storage representation of an Entry.
type EntrySnapshot struct {
	ID            string
	TransactionID string
	AccountID     string
	Amount        decimal.Decimal
	Currency      string
}

// TransactionSnapshot is the storage representation of a Transaction.
// Date is a civil day at midnight UTC.
type TransactionSnapshot struct {
	ID          string
	Type        TransactionType
	Date        time.Time
	Description string
	PayeeID     string
	CategoryID  string
	Entries     []EntrySnapshot
}

// Snapshot returns the storage representation of t.
func (t *Transaction) Snapshot() TransactionSnapshot {
	s := TransactionSnapshot{
		ID:          t.id,
		Type:        t.txType,
		Date:        t.date,
		Description: t.description,
		PayeeID:     t.payeeID,
		CategoryID:  t.categoryID,
		Entries:     make([]EntrySnapshot, 0, len(t.entries)),
	}

	for _, e := range t.entries {
		s.Entries = append(s.Entries, EntrySnapshot{
			ID:            e.id,
			TransactionID: e.transactionID,
			AccountID:     e.accountID,
			Amount:        e.amount.amount,
			Currency:      e.amount.currency,
		})
	}

	return s
}

// RestoreTransaction rebuilds a stored transaction. Every structural invariant is
// checked and the entry list must be complete; the future-date rule is not re-applied.
func RestoreTransaction(s TransactionSnapshot) (*Transaction, error) {
	if !s.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransactionType, s.Type)
	}

	t := &Transaction{
		id:          s.ID,
		txType:      s.Type,
		date:        Day(s.Date),
		description: s.Description,
		payeeID:     s.PayeeID,
		categoryID:  s.CategoryID,
		entries:     make([]Entry, 0, len(s.Entries)),
	}

	if err := t.validateClassification(); err != nil {
		return nil, err
	}

	for _, es := range s.Entries {
		amount, err := NewMoney(es.Amount, es.Currency)
		if err != nil {
			return nil, err
		}

		e, err := NewEntry(es.ID, es.TransactionID, es.AccountID, amount)
		if err != nil {
			return nil, err
		}

		t.entries = append(t.entries, e)
	}

	if err := t.validateEntries(); err != nil {
		return nil, err
	}

	if !t.IsComplete() {
		return nil, fmt.Errorf("%w: %s has %d entries", ErrWrongEntryCount, t.txType, len(t.entries))
	}

	return t, nil
}
