package domain

import (
	"fmt"
	"time"
)

// RecurringRule is a template that produces one transaction per occurrence.
type RecurringRule struct {
	ID             string
	Name           string
	Type           TransactionType
	Frequency      Frequency
	StartDate      time.Time
	EndDate        *time.Time
	LastOccurrence *time.Time

	// transfer
	FromAccountID string
	ToAccountID   string

	// income and expense
	AccountID  string
	PayeeID    string
	CategoryID string

	Amount      Money
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks that the template can produce valid transactions.
func (r *RecurringRule) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}

	if !r.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTransactionType, r.Type)
	}

	if _, err := NewFrequency(r.Frequency.Cadence()); err != nil {
		return err
	}

	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidRecurringRule)
	}

	if r.EndDate != nil && Day(*r.EndDate).Before(Day(r.StartDate)) {
		return ErrInvalidRange
	}

	if !r.Amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if err := ValidateAmountScale(r.Amount.Amount()); err != nil {
		return err
	}

	if r.Type == TransactionTypeTransfer {
		if r.FromAccountID == "" || r.ToAccountID == "" {
			return fmt.Errorf("%w: transfer needs both accounts", ErrInvalidRecurringRule)
		}
		if r.FromAccountID == r.ToAccountID {
			return ErrSameAccount
		}
		if r.PayeeID != "" {
			return ErrPayeeNotAllowed
		}
		if r.CategoryID != "" {
			return ErrCategoryNotAllowed
		}
		return nil
	}

	if r.AccountID == "" {
		return fmt.Errorf("%w: %s needs an account", ErrInvalidRecurringRule, r.Type)
	}
	if r.PayeeID == "" {
		return ErrPayeeRequired
	}
	if r.CategoryID == "" {
		return ErrCategoryRequired
	}

	return nil
}

// AccountIDs returns the accounts the rule posts against.
func (r *RecurringRule) AccountIDs() []string {
	if r.Type == TransactionTypeTransfer {
		return []string{r.FromAccountID, r.ToAccountID}
	}
	return []string{r.AccountID}
}

// PendingOccurrences returns the occurrences not yet materialized up to and including until.
func (r *RecurringRule) PendingOccurrences(until time.Time) ([]time.Time, error) {
	end := Day(until)
	if r.EndDate != nil && Day(*r.EndDate).Before(end) {
		end = Day(*r.EndDate)
	}

	all, err := r.Frequency.OccurrencesBetween(r.StartDate, maxDay(end, Day(r.StartDate)))
	if err != nil {
		return nil, err
	}

	var pending []time.Time
	for _, d := range all {
		if d.After(end) {
			continue
		}
		if r.LastOccurrence != nil && !d.After(Day(*r.LastOccurrence)) {
			continue
		}
		pending = append(pending, d)
	}

	return pending, nil
}

// OccurrenceID is the deterministic transaction id for an occurrence.
func (r *RecurringRule) OccurrenceID(date time.Time) string {
	return r.ID + "-" + Day(date).Format("20060102")
}

// BuildTransaction creates the transaction for the occurrence on date.
func (r *RecurringRule) BuildTransaction(date time.Time, clock Clock) (*Transaction, error) {
	id := r.OccurrenceID(date)

	switch r.Type {
	case TransactionTypeTransfer:
		return NewTransfer(id, date, r.Description, r.FromAccountID, r.ToAccountID, r.Amount, clock)
	case TransactionTypeIncome:
		return NewIncome(id, date, r.Description, r.PayeeID, r.CategoryID, r.AccountID, r.Amount, clock)
	case TransactionTypeExpense:
		return NewExpense(id, date, r.Description, r.PayeeID, r.CategoryID, r.AccountID, r.Amount, clock)
	}

	return nil, ErrInvalidTransactionType
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
