package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a Money is created without a currency.
const DefaultCurrency = "EUR"

// AmountScale is the number of fractional digits a stored amount may carry.
const AmountScale = 2

// MoneyTolerance is the absolute tolerance used by IsZero and Equal.
var MoneyTolerance = decimal.New(1, -2)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is an immutable amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a Money. An empty currency means DefaultCurrency.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	code, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}

	return Money{amount: amount, currency: code}, nil
}

// ValidateAmountScale rejects amounts with more than AmountScale fractional
// digits. Trailing zeros do not count.
func ValidateAmountScale(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(AmountScale)) {
		return fmt.Errorf("%w: at most %d decimal places allowed, got %s", ErrInvalidAmount, AmountScale, amount)
	}

	return nil
}

// NewMoneyFromFloat creates a Money from a float, rejecting NaN and infinities.
func NewMoneyFromFloat(amount float64, currency string) (Money, error) {
	if !isFinite(amount) {
		return Money{}, ErrInvalidAmount
	}

	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromString parses a decimal string such as "12.34".
func NewMoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	return NewMoney(d, currency)
}

// MustMoney is NewMoneyFromString that panics on error. Intended for tests and constants.
func MustMoney(amount, currency string) Money {
	m, err := NewMoneyFromString(amount, currency)
	if err != nil {
		panic(err)
	}

	return m
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func normalizeCurrency(currency string) (string, error) {
	if currency == "" {
		return DefaultCurrency, nil
	}

	code := strings.ToUpper(currency)
	if !currencyRegex.MatchString(code) {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}

	return code, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Sub returns m - other.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}

	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}, nil
}

// Mul returns m * factor.
func (m Money) Mul(factor float64) (Money, error) {
	if !isFinite(factor) {
		return Money{}, ErrInvalidFactor
	}

	return Money{amount: m.amount.Mul(decimal.NewFromFloat(factor)), currency: m.currency}, nil
}

// Div returns m / divisor.
func (m Money) Div(divisor float64) (Money, error) {
	if !isFinite(divisor) || divisor == 0 {
		return Money{}, ErrInvalidDivisor
	}

	return Money{amount: m.amount.Div(decimal.NewFromFloat(divisor)), currency: m.currency}, nil
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currency: m.currency}
}

// IsZero reports whether the amount is within MoneyTolerance of zero.
func (m Money) IsZero() bool {
	return m.amount.Abs().LessThan(MoneyTolerance)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is strictly less than zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// Equal reports whether both currencies match and the amounts differ by less than MoneyTolerance.
func (m Money) Equal(other Money) bool {
	if m.currency != other.currency {
		return false
	}

	return m.amount.Sub(other.amount).Abs().LessThan(MoneyTolerance)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
