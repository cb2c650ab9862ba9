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

// RecurringService defines the behavior needed by RecurringHandler.
type RecurringService interface {
	CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.RecurringRule, error)
	GetRule(ctx context.Context, id string) (*domain.RecurringRule, error)
	ListRules(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error)
	PreviewOccurrences(ctx context.Context, ruleID string, from, to time.Time) ([]time.Time, error)
	MaterializeDue(ctx context.Context, now time.Time) (int, error)
}

// RecurringHandler handles recurring rule requests.
type RecurringHandler struct {
	uc    RecurringService
	clock domain.Clock
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(uc RecurringService) *RecurringHandler {
	return &RecurringHandler{uc: uc, clock: domain.SystemClock{}}
}

// Create creates a recurring rule.
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringRuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recurring rule", err.Error())
		return
	}

	rule, err := h.uc.CreateRule(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create recurring rule", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecurringRuleFromDomain(rule))
}

// Get retrieves a rule by ID.
func (h *RecurringHandler) Get(w http.ResponseWriter, r *http.Request) {
	rule, err := h.uc.GetRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get recurring rule", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RecurringRuleFromDomain(rule))
}

// List lists rules.
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	rules, err := h.uc.ListRules(r.Context(), parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list recurring rules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rules": dto.RecurringRulesFromDomain(rules)})
}

// Occurrences lists scheduled dates between ?from and ?to. Both default to today.
func (h *RecurringHandler) Occurrences(w http.ResponseWriter, r *http.Request) {
	today := h.clock.Now()

	from, err := parseDateQuery(r, "from", today)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from date", err.Error())
		return
	}

	to, err := parseDateQuery(r, "to", today)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to date", err.Error())
		return
	}

	dates, err := h.uc.PreviewOccurrences(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		writeDomainError(w, "failed to list occurrences", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DatesFromTimes(dates))
}

// Materialize creates every due occurrence now instead of waiting for the worker.
func (h *RecurringHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	created, err := h.uc.MaterializeDue(r.Context(), h.clock.Now())
	if err != nil {
		writeDomainError(w, "failed to materialize recurring rules", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MaterializeResponse{Created: created})
}
