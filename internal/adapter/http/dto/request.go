package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Currency      string `json:"currency"`
	PaymentDueDay *int   `json:"payment_due_day,omitempty"`
	PaymentShift  string `json:"payment_shift,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	shift := domain.ShiftDirection("")
	if r.PaymentShift != "" {
		parsed, err := domain.ParseShiftDirection(r.PaymentShift)
		if err != nil {
			return usecase.CreateAccountInput{}, err
		}
		shift = parsed
	}

	return usecase.CreateAccountInput{
		Name:          r.Name,
		Kind:          domain.AccountKind(r.Kind),
		Currency:      r.Currency,
		PaymentDueDay: r.PaymentDueDay,
		PaymentShift:  shift,
	}, nil
}

// CreateNamedRequest creates a payee or a category.
type CreateNamedRequest struct {
	Name string `json:"name"`
}

// CreateTransferRequest represents a request to record a transfer.
type CreateTransferRequest struct {
	ID            string          `json:"id,omitempty"`
	Date          string          `json:"date"`
	Description   string          `json:"description,omitempty"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() (usecase.CreateTransferInput, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return usecase.CreateTransferInput{}, err
	}
	if err := domain.ValidateAmountScale(r.Amount); err != nil {
		return usecase.CreateTransferInput{}, err
	}

	return usecase.CreateTransferInput{
		ID:            r.ID,
		Date:          date,
		Description:   r.Description,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Currency:      r.Currency,
	}, nil
}

// CreateCategorizedRequest represents a request to record an income or an expense.
type CreateCategorizedRequest struct {
	ID          string          `json:"id,omitempty"`
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	PayeeID     string          `json:"payee_id"`
	CategoryID  string          `json:"category_id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategorizedRequest) ToUseCaseInput() (usecase.CreateCategorizedInput, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return usecase.CreateCategorizedInput{}, err
	}
	if err := domain.ValidateAmountScale(r.Amount); err != nil {
		return usecase.CreateCategorizedInput{}, err
	}

	return usecase.CreateCategorizedInput{
		ID:          r.ID,
		Date:        date,
		Description: r.Description,
		PayeeID:     r.PayeeID,
		CategoryID:  r.CategoryID,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Currency:    r.Currency,
	}, nil
}

// UpdateDescriptionRequest replaces a transaction description.
type UpdateDescriptionRequest struct {
	Description string `json:"description"`
}

// UpdateDateRequest moves a transaction to another day.
type UpdateDateRequest struct {
	Date string `json:"date"`
}

// CreateRecurringRuleRequest represents a request to create a recurring rule.
type CreateRecurringRuleRequest struct {
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Frequency     string          `json:"frequency"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date,omitempty"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	AccountID     string          `json:"account_id,omitempty"`
	PayeeID       string          `json:"payee_id,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRecurringRuleRequest) ToUseCaseInput() (usecase.CreateRuleInput, error) {
	start, err := ParseDate("start_date", r.StartDate)
	if err != nil {
		return usecase.CreateRuleInput{}, err
	}
	if err := domain.ValidateAmountScale(r.Amount); err != nil {
		return usecase.CreateRuleInput{}, err
	}

	input := usecase.CreateRuleInput{
		Name:          r.Name,
		Type:          r.Type,
		Frequency:     r.Frequency,
		StartDate:     start,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		AccountID:     r.AccountID,
		PayeeID:       r.PayeeID,
		CategoryID:    r.CategoryID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Description:   r.Description,
	}

	if r.EndDate != "" {
		end, err := ParseDate("end_date", r.EndDate)
		if err != nil {
			return usecase.CreateRuleInput{}, err
		}
		input.EndDate = &end
	}

	return input, nil
}

// ParseDate parses a required YYYY-MM-DD field.
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}

	day, err := domain.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD: %w", field, err)
	}

	return day, nil
}
