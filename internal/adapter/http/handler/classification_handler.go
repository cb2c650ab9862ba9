package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
)

// ClassificationService defines the behavior needed by ClassificationHandler.
type ClassificationService interface {
	CreatePayee(ctx context.Context, name string) (*domain.Payee, error)
	GetPayee(ctx context.Context, id string) (*domain.Payee, error)
	ListPayees(ctx context.Context, limit, offset int) ([]*domain.Payee, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context, limit, offset int) ([]*domain.Category, error)
}

// ClassificationHandler serves payees and categories.
type ClassificationHandler struct {
	uc ClassificationService
}

// NewClassificationHandler creates a new ClassificationHandler.
func NewClassificationHandler(uc ClassificationService) *ClassificationHandler {
	return &ClassificationHandler{uc: uc}
}

func (h *ClassificationHandler) CreatePayee(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNamedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payee, err := h.uc.CreatePayee(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, "failed to create payee", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PayeeFromDomain(payee))
}

func (h *ClassificationHandler) GetPayee(w http.ResponseWriter, r *http.Request) {
	payee, err := h.uc.GetPayee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get payee", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PayeeFromDomain(payee))
}

func (h *ClassificationHandler) ListPayees(w http.ResponseWriter, r *http.Request) {
	payees, err := h.uc.ListPayees(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payees", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"payees": dto.PayeesFromDomain(payees)})
}

func (h *ClassificationHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNamedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.uc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, "failed to create category", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

func (h *ClassificationHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.uc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get category", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

func (h *ClassificationHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.ListCategories(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"categories": dto.CategoriesFromDomain(categories)})
}
