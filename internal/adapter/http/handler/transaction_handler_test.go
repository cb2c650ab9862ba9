package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

type transactionServiceStub struct {
	transferFn    func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error)
	incomeFn      func(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error)
	expenseFn     func(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error)
	getFn         func(ctx context.Context, id string) (*domain.Transaction, error)
	listFn        func(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error)
	balanceFn     func(ctx context.Context, accountID string, asOf time.Time) (domain.Money, error)
	descriptionFn func(ctx context.Context, id, description string) (*domain.Transaction, error)
	dateFn        func(ctx context.Context, id string, date time.Time) (*domain.Transaction, error)
}

func (s *transactionServiceStub) CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
	return s.transferFn(ctx, input)
}

func (s *transactionServiceStub) CreateIncome(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error) {
	return s.incomeFn(ctx, input)
}

func (s *transactionServiceStub) CreateExpense(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error) {
	return s.expenseFn(ctx, input)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func (s *transactionServiceStub) ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func (s *transactionServiceStub) GetBalance(ctx context.Context, accountID string, asOf time.Time) (domain.Money, error) {
	return s.balanceFn(ctx, accountID, asOf)
}

func (s *transactionServiceStub) UpdateDescription(ctx context.Context, id, description string) (*domain.Transaction, error) {
	return s.descriptionFn(ctx, id, description)
}

func (s *transactionServiceStub) UpdateDate(ctx context.Context, id string, date time.Time) (*domain.Transaction, error) {
	return s.dateFn(ctx, id, date)
}

func testExpense(t *testing.T, id string) *domain.Transaction {
	t.Helper()

	tx, err := domain.NewExpense(id, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), "rent",
		"landlord", "housing", "main", domain.MustMoney("950", "EUR"), domain.FixedClock{At: handlerNow})
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}
	return tx
}

func TestTransactionHandler_CreateTransfer(t *testing.T) {
	var captured usecase.CreateTransferInput
	handler := NewTransactionHandler(&transactionServiceStub{
		transferFn: func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
			captured = input
			return domain.NewTransfer("tx-1", input.Date, input.Description, input.FromAccountID, input.ToAccountID,
				domain.MustMoney(input.Amount.String(), "EUR"), domain.FixedClock{At: handlerNow})
		},
	})

	body, _ := json.Marshal(dto.CreateTransferRequest{
		Date:          "2025-05-31",
		FromAccountID: "main",
		ToAccountID:   "savings",
		Amount:        decimal.RequireFromString("200.00"),
	})
	req := httptest.NewRequest(http.MethodPost, "/transactions/transfer", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CreateTransfer(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.FromAccountID != "main" || !captured.Date.Equal(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Type != "transfer" || len(resp.Entries) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactionHandler_CreateTransfer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"missing date", `{"from_account_id":"a","to_account_id":"b","amount":"1"}`, nil, http.StatusBadRequest},
		{"sub-cent amount", `{"date":"2025-05-31","from_account_id":"a","to_account_id":"b","amount":"12.345"}`, nil, http.StatusBadRequest},
		{"same account", `{"date":"2025-05-31","from_account_id":"a","to_account_id":"a","amount":"1"}`, domain.ErrSameAccount, http.StatusBadRequest},
		{"future date", `{"date":"2025-07-01","from_account_id":"a","to_account_id":"b","amount":"1"}`, domain.ErrFutureDate, http.StatusBadRequest},
		{"unknown account", `{"date":"2025-05-31","from_account_id":"a","to_account_id":"b","amount":"1"}`, fmt.Errorf("%w: b", domain.ErrAccountNotFound), http.StatusNotFound},
		{"duplicate id", `{"id":"tx-1","date":"2025-05-31","from_account_id":"a","to_account_id":"b","amount":"1"}`, domain.ErrDuplicateTransaction, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransactionHandler(&transactionServiceStub{
				transferFn: func(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error) {
					if tt.err == nil {
						t.Fatal("service should not be called")
					}
					return nil, tt.err
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/transactions/transfer", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.CreateTransfer(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTransactionHandler_CreateExpenseAndIncome(t *testing.T) {
	var expenseCalls, incomeCalls int
	handler := NewTransactionHandler(&transactionServiceStub{
		expenseFn: func(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error) {
			expenseCalls++
			if input.PayeeID != "landlord" || input.CategoryID != "housing" {
				t.Fatalf("unexpected input %+v", input)
			}
			return testExpense(t, "tx-1"), nil
		},
		incomeFn: func(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error) {
			incomeCalls++
			return nil, domain.ErrPayeeNotFound
		},
	})

	body := `{"date":"2025-05-02","payee_id":"landlord","category_id":"housing","account_id":"main","amount":"950"}`

	rec := httptest.NewRecorder()
	handler.CreateExpense(rec, httptest.NewRequest(http.MethodPost, "/transactions/expense", bytes.NewBufferString(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.CreateIncome(rec, httptest.NewRequest(http.MethodPost, "/transactions/income", bytes.NewBufferString(body)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	if expenseCalls != 1 || incomeCalls != 1 {
		t.Fatalf("expected one call each, got expense=%d income=%d", expenseCalls, incomeCalls)
	}
}

func TestTransactionHandler_Get(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			if id == "missing" {
				return nil, domain.ErrTransactionNotFound
			}
			return testExpense(t, id), nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/transactions/tx-1", nil), "id", "tx-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Entries[0].ID != "tx-1-entry" || !resp.Entries[0].Amount.Equal(decimal.NewFromInt(-950)) {
		t.Fatalf("unexpected entry %+v", resp.Entries[0])
	}

	rec = httptest.NewRecorder()
	handler.Get(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/transactions/missing", nil), "id", "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_UpdateDescription(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		descriptionFn: func(ctx context.Context, id, description string) (*domain.Transaction, error) {
			return testExpense(t, id).WithDescription(description), nil
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/transactions/tx-1/description", bytes.NewBufferString(`{"description":"June rent"}`))
	req = setChiURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	handler.UpdateDescription(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Description != "June rent" {
		t.Fatalf("expected updated description, got %q", resp.Description)
	}
}

func TestTransactionHandler_UpdateDate(t *testing.T) {
	var captured time.Time
	handler := NewTransactionHandler(&transactionServiceStub{
		dateFn: func(ctx context.Context, id string, date time.Time) (*domain.Transaction, error) {
			captured = date
			return nil, domain.ErrFutureDate
		},
	})

	req := httptest.NewRequest(http.MethodPatch, "/transactions/tx-1/date", bytes.NewBufferString(`{"date":"2025-07-01"}`))
	req = setChiURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	handler.UpdateDate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !captured.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date passed: %v", captured)
	}
}

func TestTransactionHandler_ListByAccount(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
			if input.AccountID != "main" || input.Limit != 10 {
				t.Fatalf("unexpected input %+v", input)
			}
			return []*domain.Transaction{testExpense(t, "tx-1"), testExpense(t, "tx-2")}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/main/transactions?limit=10", nil)
	req = setChiURLParam(req, "id", "main")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Transactions []dto.TransactionResponse `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(resp.Transactions))
	}
}

func TestTransactionHandler_Balance(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		balanceFn: func(ctx context.Context, accountID string, asOf time.Time) (domain.Money, error) {
			if !asOf.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("expected as_of to default to today, got %v", asOf)
			}
			return domain.MustMoney("187.50", "EUR"), nil
		},
	})
	handler.clock = domain.FixedClock{At: handlerNow}

	req := httptest.NewRequest(http.MethodGet, "/accounts/main/balance", nil)
	req = setChiURLParam(req, "id", "main")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AsOf != "2025-06-01" || resp.Currency != "EUR" || !resp.Balance.Equal(decimal.RequireFromString("187.50")) {
		t.Fatalf("unexpected balance %+v", resp)
	}
}
