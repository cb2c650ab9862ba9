package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{
			name:    "checking",
			account: Account{Name: "Main", Kind: AccountKindChecking, Currency: "eur"},
		},
		{
			name:    "credit card with schedule",
			account: Account{Name: "Visa", Kind: AccountKindCreditCard, Currency: "EUR", PaymentDueDay: intPtr(25), PaymentShift: ShiftBefore},
		},
		{
			name:    "empty name",
			account: Account{Name: "", Kind: AccountKindCash, Currency: "EUR"},
			wantErr: ErrInvalidAccountName,
		},
		{
			name:    "unknown kind",
			account: Account{Name: "Main", Kind: "brokerage", Currency: "EUR"},
			wantErr: ErrInvalidAccountKind,
		},
		{
			name:    "bad currency",
			account: Account{Name: "Main", Kind: AccountKindSavings, Currency: "EURO"},
			wantErr: ErrInvalidCurrency,
		},
		{
			name:    "due day out of range",
			account: Account{Name: "Visa", Kind: AccountKindCreditCard, Currency: "EUR", PaymentDueDay: intPtr(31)},
			wantErr: ErrInvalidDueDay,
		},
		{
			name:    "bad shift",
			account: Account{Name: "Visa", Kind: AccountKindCreditCard, Currency: "EUR", PaymentDueDay: intPtr(5), PaymentShift: "up"},
			wantErr: ErrInvalidShiftDirection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.account
			err := a.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, a.Currency, 3)
		})
	}
}

func TestAccount_PaymentDueDate(t *testing.T) {
	a := Account{Name: "Main", Kind: AccountKindChecking, Currency: "EUR"}
	_, err := a.PaymentDueDate()
	require.ErrorIs(t, err, ErrNoPaymentSchedule)

	a.PaymentDueDay = intPtr(25)
	due, err := a.PaymentDueDate()
	require.NoError(t, err)
	assert.Equal(t, ShiftNone, due.ShiftDirection())

	next, err := due.NextDueDate(date(2025, 12, 1))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 12, 25), next)
}

func TestAccount_Accepts(t *testing.T) {
	a := Account{ID: "acc", Currency: "EUR"}

	require.NoError(t, a.Accepts(MustMoney("1", "EUR")))
	require.ErrorIs(t, a.Accepts(MustMoney("1", "USD")), ErrCurrencyMismatch)
}
