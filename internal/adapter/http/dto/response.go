package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	Currency      string    `json:"currency"`
	PaymentDueDay *int      `json:"payment_due_day,omitempty"`
	PaymentShift  string    `json:"payment_shift,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Kind:          string(a.Kind),
		Currency:      a.Currency,
		PaymentDueDay: a.PaymentDueDay,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.PaymentDueDay != nil {
		resp.PaymentShift = string(a.PaymentShift)
	}
	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// NamedResponse represents a payee or a category.
type NamedResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PayeeFromDomain converts a payee to response.
func PayeeFromDomain(p *domain.Payee) *NamedResponse {
	return &NamedResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

// CategoryFromDomain converts a category to response.
func CategoryFromDomain(c *domain.Category) *NamedResponse {
	return &NamedResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// PayeesFromDomain converts payees to responses.
func PayeesFromDomain(payees []*domain.Payee) []*NamedResponse {
	result := make([]*NamedResponse, len(payees))
	for i, p := range payees {
		result[i] = PayeeFromDomain(p)
	}
	return result
}

// CategoriesFromDomain converts categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*NamedResponse {
	result := make([]*NamedResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	Date        string           `json:"date"`
	Description string           `json:"description,omitempty"`
	PayeeID     string           `json:"payee_id,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	Entries     []*EntryResponse `json:"entries"`
}

// TransactionFromDomain converts a transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID(),
		Type:        string(t.Type()),
		Date:        t.Date().Format(domain.DateLayout),
		Description: t.Description(),
		PayeeID:     t.PayeeID(),
		CategoryID:  t.CategoryID(),
	}

	entries := t.Entries()
	resp.Entries = make([]*EntryResponse, len(entries))
	for i, e := range entries {
		resp.Entries[i] = &EntryResponse{
			ID:        e.ID(),
			AccountID: e.AccountID(),
			Amount:    e.Amount().Amount(),
			Currency:  e.Amount().Currency(),
		}
	}

	return resp
}

// TransactionsFromDomain converts transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// BalanceResponse is an account balance at the end of a day.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	AsOf      string          `json:"as_of"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

// RecurringRuleResponse represents a recurring rule in API responses.
type RecurringRuleResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Frequency      string          `json:"frequency"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date,omitempty"`
	LastOccurrence string          `json:"last_occurrence,omitempty"`
	FromAccountID  string          `json:"from_account_id,omitempty"`
	ToAccountID    string          `json:"to_account_id,omitempty"`
	AccountID      string          `json:"account_id,omitempty"`
	PayeeID        string          `json:"payee_id,omitempty"`
	CategoryID     string          `json:"category_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Description    string          `json:"description,omitempty"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecurringRuleFromDomain converts a rule to response.
func RecurringRuleFromDomain(r *domain.RecurringRule) *RecurringRuleResponse {
	resp := &RecurringRuleResponse{
		ID:            r.ID,
		Name:          r.Name,
		Type:          string(r.Type),
		Frequency:     r.Frequency.String(),
		StartDate:     r.StartDate.Format(domain.DateLayout),
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		AccountID:     r.AccountID,
		PayeeID:       r.PayeeID,
		CategoryID:    r.CategoryID,
		Amount:        r.Amount.Amount(),
		Currency:      r.Amount.Currency(),
		Description:   r.Description,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
	}
	if r.EndDate != nil {
		resp.EndDate = r.EndDate.Format(domain.DateLayout)
	}
	if r.LastOccurrence != nil {
		resp.LastOccurrence = r.LastOccurrence.Format(domain.DateLayout)
	}
	return resp
}

// RecurringRulesFromDomain converts rules to responses.
func RecurringRulesFromDomain(rules []*domain.RecurringRule) []*RecurringRuleResponse {
	result := make([]*RecurringRuleResponse, len(rules))
	for i, r := range rules {
		result[i] = RecurringRuleFromDomain(r)
	}
	return result
}

// DatesResponse is a list of civil days.
type DatesResponse struct {
	Dates []string `json:"dates"`
}

// DatesFromTimes formats days as YYYY-MM-DD.
func DatesFromTimes(days []time.Time) DatesResponse {
	out := DatesResponse{Dates: make([]string, len(days))}
	for i, d := range days {
		out.Dates[i] = d.Format(domain.DateLayout)
	}
	return out
}

// MaterializeResponse reports a recurring run.
type MaterializeResponse struct {
	Created int `json:"created"`
}

// HolidayResponse is a named closed day.
type HolidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// HolidaysFromDomain converts holidays to responses.
func HolidaysFromDomain(holidays []domain.Holiday) []HolidayResponse {
	result := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		result[i] = HolidayResponse{Date: h.Date.Format(domain.DateLayout), Name: h.Name}
	}
	return result
}

// DateResponse is a single civil day.
type DateResponse struct {
	Date string `json:"date"`
}

// ClosedDayResponse tells whether a day is closed for settlement.
type ClosedDayResponse struct {
	Date   string `json:"date"`
	Closed bool   `json:"closed"`
}

// ConsistencyResponse is the result of a ledger check.
type ConsistencyResponse struct {
	Status                string          `json:"status"`
	Consistent            bool            `json:"consistent"`
	TransferTotal         decimal.Decimal `json:"transfer_total"`
	MalformedTransactions int64           `json:"malformed_transactions"`
	Message               string          `json:"message,omitempty"`
}

// ConsistencyFromReport converts a ledger report to response.
func ConsistencyFromReport(r usecase.ConsistencyReport) ConsistencyResponse {
	status := "inconsistent"
	if r.Consistent {
		status = "consistent"
	}
	return ConsistencyResponse{
		Status:                status,
		Consistent:            r.Consistent,
		TransferTotal:         r.TransferTotal,
		MalformedTransactions: r.MalformedTransactions,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
