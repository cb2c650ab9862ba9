package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*domain.Transaction, error)
	CreateIncome(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error)
	CreateExpense(ctx context.Context, input usecase.CreateCategorizedInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, input usecase.ListTransactionsByAccountInput) ([]*domain.Transaction, error)
	GetBalance(ctx context.Context, accountID string, asOf time.Time) (domain.Money, error)
	UpdateDescription(ctx context.Context, id, description string) (*domain.Transaction, error)
	UpdateDate(ctx context.Context, id string, date time.Time) (*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	txUC  TransactionService
	clock domain.Clock
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txUC: txUC, clock: domain.SystemClock{}}
}

// CreateTransfer records a transfer.
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transfer", err.Error())
		return
	}

	t, err := h.txUC.CreateTransfer(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(t))
}

// CreateIncome records an income.
func (h *TransactionHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	h.createCategorized(w, r, "income", h.txUC.CreateIncome)
}

// CreateExpense records an expense.
func (h *TransactionHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createCategorized(w, r, "expense", h.txUC.CreateExpense)
}

func (h *TransactionHandler) createCategorized(
	w http.ResponseWriter,
	r *http.Request,
	kind string,
	create func(context.Context, usecase.CreateCategorizedInput) (*domain.Transaction, error),
) {
	var req dto.CreateCategorizedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+kind, err.Error())
		return
	}

	t, err := create(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create "+kind, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(t))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.txUC.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(t))
}

// UpdateDescription replaces a transaction's description.
func (h *TransactionHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDescriptionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.txUC.UpdateDescription(r.Context(), chi.URLParam(r, "id"), req.Description)
	if err != nil {
		writeDomainError(w, "failed to update transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(t))
}

// UpdateDate moves a transaction to another day.
func (h *TransactionHandler) UpdateDate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	t, err := h.txUC.UpdateDate(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		writeDomainError(w, "failed to update transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(t))
}

// ListByAccount lists the transactions touching an account.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	txs, err := h.txUC.ListTransactionsByAccount(r.Context(), usecase.ListTransactionsByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": dto.TransactionsFromDomain(txs)})
}

// Balance returns an account balance at the end of ?as_of (default today).
func (h *TransactionHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	asOf, err := parseDateQuery(r, "as_of", h.clock.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of date", err.Error())
		return
	}

	balance, err := h.txUC.GetBalance(r.Context(), id, asOf)
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: id,
		AsOf:      asOf.Format(domain.DateLayout),
		Balance:   balance.Amount(),
		Currency:  balance.Currency(),
	})
}
