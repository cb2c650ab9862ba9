package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType classifies a transaction and decides its entry shape.
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
)

// IsValid reports whether t is one of the three known types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeTransfer, TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

// ParseTransactionType parses a wire tag.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
	return t, nil
}

// TransactionParams holds the header fields of a transaction.
type TransactionParams struct {
	ID          string
	Type        TransactionType
	Date        time.Time
	Description string
	PayeeID     string
	CategoryID  string
}

// Transaction is the double-entry aggregate. Instances are never half-valid:
// every transition returns a new validated value and leaves the receiver untouched.
type Transaction struct {
	id          string
	txType      TransactionType
	date        time.Time
	description string
	payeeID     string
	categoryID  string
	entries     []Entry
}

// NewTransaction validates the header and returns a transaction without entries.
func NewTransaction(p TransactionParams, clock Clock) (*Transaction, error) {
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransactionType, p.Type)
	}

	t := &Transaction{
		id:          p.ID,
		txType:      p.Type,
		date:        Day(p.Date),
		description: p.Description,
		payeeID:     p.PayeeID,
		categoryID:  p.CategoryID,
	}

	if err := t.validateDate(clock); err != nil {
		return nil, err
	}

	if err := t.validateClassification(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Transaction) ID() string            { return t.id }
func (t *Transaction) Type() TransactionType { return t.txType }
func (t *Transaction) Date() time.Time       { return t.date }
func (t *Transaction) Description() string   { return t.description }
func (t *Transaction) PayeeID() string       { return t.payeeID }
func (t *Transaction) CategoryID() string    { return t.categoryID }

// Entries returns a copy of the entry list.
func (t *Transaction) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// AddEntry returns a new transaction with e appended, after re-running full validation.
func (t *Transaction) AddEntry(e Entry, clock Clock) (*Transaction, error) {
	if e.TransactionID() != t.id {
		return nil, fmt.Errorf("%w: entry %s references %s", ErrForeignEntry, e.ID(), e.TransactionID())
	}

	next := t.clone()
	next.entries = append(next.entries, e)

	if err := next.validateDate(clock); err != nil {
		return nil, err
	}

	if err := next.validateEntries(); err != nil {
		return nil, err
	}

	return next, nil
}

// WithDate returns a copy of t dated date.
func (t *Transaction) WithDate(date time.Time, clock Clock) (*Transaction, error) {
	next := t.clone()
	next.date = Day(date)

	if err := next.validateDate(clock); err != nil {
		return nil, err
	}

	return next, nil
}

// WithDescription returns a copy of t carrying description.
func (t *Transaction) WithDescription(description string) *Transaction {
	next := t.clone()
	next.description = description
	return next
}

// IsComplete reports whether the entry list has its final shape.
func (t *Transaction) IsComplete() bool {
	switch t.txType {
	case TransactionTypeTransfer:
		return len(t.entries) == 2
	default:
		return len(t.entries) == 1
	}
}

// Total returns the sum of all entry amounts.
func (t *Transaction) Total() (Money, error) {
	if len(t.entries) == 0 {
		return ZeroMoney(DefaultCurrency)
	}

	sum := t.entries[0].Amount()
	for _, e := range t.entries[1:] {
		var err error
		sum, err = sum.Add(e.Amount())
		if err != nil {
			return Money{}, err
		}
	}

	return sum, nil
}

func (t *Transaction) clone() *Transaction {
	next := *t
	next.entries = t.Entries()
	return &next
}

func (t *Transaction) validateDate(clock Clock) error {
	today := Day(clock.Now())
	if t.date.After(today) {
		return fmt.Errorf("%w: %s is after %s", ErrFutureDate, t.date.Format(DateLayout), today.Format(DateLayout))
	}
	return nil
}

func (t *Transaction) validateClassification() error {
	if t.txType == TransactionTypeTransfer {
		if t.payeeID != "" {
			return ErrPayeeNotAllowed
		}
		if t.categoryID != "" {
			return ErrCategoryNotAllowed
		}
		return nil
	}

	if strings.TrimSpace(t.payeeID) == "" {
		return ErrPayeeRequired
	}
	if strings.TrimSpace(t.categoryID) == "" {
		return ErrCategoryRequired
	}
	return nil
}

func (t *Transaction) validateEntries() error {
	for _, e := range t.entries {
		if e.TransactionID() != t.id {
			return fmt.Errorf("%w: entry %s", ErrForeignEntry, e.ID())
		}
	}

	switch t.txType {
	case TransactionTypeTransfer:
		return t.validateTransferEntries()
	case TransactionTypeIncome:
		return t.validateSingleEntry(Money.IsPositive)
	case TransactionTypeExpense:
		return t.validateSingleEntry(Money.IsNegative)
	}

	return ErrInvalidTransactionType
}

func (t *Transaction) validateTransferEntries() error {
	switch len(t.entries) {
	case 0, 1:
		return nil
	case 2:
		sum, err := t.entries[0].Amount().Add(t.entries[1].Amount())
		if err != nil {
			return err
		}
		if !sum.IsZero() {
			return fmt.Errorf("%w: entries sum to %s", ErrUnbalancedTransfer, sum)
		}
		return nil
	default:
		return ErrTooManyEntries
	}
}

func (t *Transaction) validateSingleEntry(signOK func(Money) bool) error {
	if len(t.entries) != 1 {
		return fmt.Errorf("%w: %s needs exactly 1, got %d", ErrWrongEntryCount, t.txType, len(t.entries))
	}

	if !signOK(t.entries[0].Amount()) {
		return fmt.Errorf("%w: %s entry of %s", ErrWrongEntrySign, t.txType, t.entries[0].Amount())
	}

	return nil
}

// NewTransfer moves amount from one account to another.
// Entry ids are "{id}-from" and "{id}-to".
func NewTransfer(id string, date time.Time, description, fromAccountID, toAccountID string, amount Money, clock Clock) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if err := ValidateAmountScale(amount.Amount()); err != nil {
		return nil, err
	}

	t, err := NewTransaction(TransactionParams{
		ID:          id,
		Type:        TransactionTypeTransfer,
		Date:        date,
		Description: description,
	}, clock)
	if err != nil {
		return nil, err
	}

	from, err := NewEntry(id+"-from", id, fromAccountID, amount.Neg())
	if err != nil {
		return nil, err
	}

	to, err := NewEntry(id+"-to", id, toAccountID, amount)
	if err != nil {
		return nil, err
	}

	if t, err = t.AddEntry(from, clock); err != nil {
		return nil, err
	}

	return t.AddEntry(to, clock)
}

// NewIncome records money received into accountID. The entry id is "{id}-entry".
func NewIncome(id string, date time.Time, description, payeeID, categoryID, accountID string, amount Money, clock Clock) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if err := ValidateAmountScale(amount.Amount()); err != nil {
		return nil, err
	}

	return newSingleEntry(TransactionTypeIncome, id, date, description, payeeID, categoryID, accountID, amount, clock)
}

// NewExpense records money spent from accountID. The entry id is "{id}-entry".
func NewExpense(id string, date time.Time, description, payeeID, categoryID, accountID string, amount Money, clock Clock) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if err := ValidateAmountScale(amount.Amount()); err != nil {
		return nil, err
	}

	return newSingleEntry(TransactionTypeExpense, id, date, description, payeeID, categoryID, accountID, amount.Neg(), clock)
}

func newSingleEntry(
	txType TransactionType,
	id string,
	date time.Time,
	description, payeeID, categoryID, accountID string,
	signed Money,
	clock Clock,
) (*Transaction, error) {
	t, err := NewTransaction(TransactionParams{
		ID:          id,
		Type:        txType,
		Date:        date,
		Description: description,
		PayeeID:     payeeID,
		CategoryID:  categoryID,
	}, clock)
	if err != nil {
		return nil, err
	}

	entry, err := NewEntry(id+"-entry", id, accountID, signed)
	if err != nil {
		return nil, err
	}

	return t.AddEntry(entry, clock)
}
