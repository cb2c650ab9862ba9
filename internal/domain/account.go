package domain

import (
	"fmt"
	"time"
)

// AccountKind classifies an account.
type AccountKind string

const (
	AccountKindChecking   AccountKind = "checking"
	AccountKindSavings    AccountKind = "savings"
	AccountKindCreditCard AccountKind = "credit_card"
	AccountKindCash       AccountKind = "cash"
)

// IsValid reports whether k is a known kind.
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountKindChecking, AccountKindSavings, AccountKindCreditCard, AccountKindCash:
		return true
	}
	return false
}

// Account is a household account that entries post against.
type Account struct {
	ID       string
	Name     string
	Kind     AccountKind
	Currency string
	// PaymentDueDay is set for accounts with a monthly statement, such as credit cards.
	PaymentDueDay *int
	PaymentShift  ShiftDirection
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks name, kind, currency and the payment schedule.
func (a *Account) Validate() error {
	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	if !a.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountKind, a.Kind)
	}

	code, err := normalizeCurrency(a.Currency)
	if err != nil {
		return err
	}
	a.Currency = code

	if a.PaymentDueDay != nil {
		if _, err := a.PaymentDueDate(); err != nil {
			return err
		}
	}

	return nil
}

// PaymentDueDate returns the account's payment schedule, or ErrNoPaymentSchedule.
func (a *Account) PaymentDueDate() (ExpectedPaymentDueDate, error) {
	if a.PaymentDueDay == nil {
		return ExpectedPaymentDueDate{}, ErrNoPaymentSchedule
	}

	shift := a.PaymentShift
	if shift == "" {
		shift = ShiftNone
	}

	return NewExpectedPaymentDueDate(*a.PaymentDueDay, shift)
}

// Accepts reports whether m can post against the account.
func (a *Account) Accepts(m Money) error {
	if m.Currency() != a.Currency {
		return fmt.Errorf("%w: account %s is %s, amount is %s", ErrCurrencyMismatch, a.ID, a.Currency, m.Currency())
	}
	return nil
}
