package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

type recurringServiceStub struct {
	createFn      func(ctx context.Context, input usecase.CreateRuleInput) (*domain.RecurringRule, error)
	getFn         func(ctx context.Context, id string) (*domain.RecurringRule, error)
	listFn        func(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error)
	previewFn     func(ctx context.Context, ruleID string, from, to time.Time) ([]time.Time, error)
	materializeFn func(ctx context.Context, now time.Time) (int, error)
}

func (s *recurringServiceStub) CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.RecurringRule, error) {
	return s.createFn(ctx, input)
}

func (s *recurringServiceStub) GetRule(ctx context.Context, id string) (*domain.RecurringRule, error) {
	return s.getFn(ctx, id)
}

func (s *recurringServiceStub) ListRules(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error) {
	return s.listFn(ctx, limit, offset)
}

func (s *recurringServiceStub) PreviewOccurrences(ctx context.Context, ruleID string, from, to time.Time) ([]time.Time, error) {
	return s.previewFn(ctx, ruleID, from, to)
}

func (s *recurringServiceStub) MaterializeDue(ctx context.Context, now time.Time) (int, error) {
	return s.materializeFn(ctx, now)
}

func testRule(t *testing.T) *domain.RecurringRule {
	t.Helper()

	freq, err := domain.NewFrequency(domain.CadenceMonthly)
	if err != nil {
		t.Fatalf("NewFrequency: %v", err)
	}

	return &domain.RecurringRule{
		ID:         "rule-1",
		Name:       "Rent",
		Type:       domain.TransactionTypeExpense,
		Frequency:  freq,
		StartDate:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
		AccountID:  "main",
		PayeeID:    "landlord",
		CategoryID: "housing",
		Amount:     domain.MustMoney("950", "EUR"),
		Active:     true,
	}
}

func TestRecurringHandler_Create(t *testing.T) {
	var captured usecase.CreateRuleInput
	handler := NewRecurringHandler(&recurringServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateRuleInput) (*domain.RecurringRule, error) {
			captured = input
			return testRule(t), nil
		},
	})

	body := `{"name":"Rent","type":"expense","frequency":"monthly","start_date":"2025-01-31",
		"account_id":"main","payee_id":"landlord","category_id":"housing","amount":"950"}`
	rec := httptest.NewRecorder()

	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/recurring-rules", bytes.NewBufferString(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Frequency != "monthly" || captured.StartDate.Day() != 31 || captured.EndDate != nil {
		t.Fatalf("unexpected input %+v", captured)
	}
}

func TestRecurringHandler_Create_InvalidCadence(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateRuleInput) (*domain.RecurringRule, error) {
			return nil, domain.ErrInvalidCadence
		},
	})

	body := `{"name":"Rent","type":"expense","frequency":"daily","start_date":"2025-01-31","amount":"950"}`
	rec := httptest.NewRecorder()

	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/recurring-rules", bytes.NewBufferString(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRecurringHandler_GetAndList(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.RecurringRule, error) {
			if id != "rule-1" {
				return nil, domain.ErrRecurringRuleNotFound
			}
			return testRule(t), nil
		},
		listFn: func(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error) {
			return []*domain.RecurringRule{testRule(t)}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/recurring-rules/rule-1", nil), "id", "rule-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Get(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/recurring-rules/nope", nil), "id", "nope"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/recurring-rules", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecurringHandler_Occurrences(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		previewFn: func(ctx context.Context, ruleID string, from, to time.Time) ([]time.Time, error) {
			if from.After(to) {
				return nil, domain.ErrInvalidRange
			}
			return []time.Time{
				time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/recurring-rules/rule-1/occurrences?from=2025-02-01&to=2025-04-30", nil)
	rec := httptest.NewRecorder()
	handler.Occurrences(rec, setChiURLParam(req, "id", "rule-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.DatesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Dates) != 2 || resp.Dates[0] != "2025-03-03" || resp.Dates[1] != "2025-04-03" {
		t.Fatalf("unexpected dates %v", resp.Dates)
	}

	req = httptest.NewRequest(http.MethodGet, "/recurring-rules/rule-1/occurrences?from=2025-05-01&to=2025-04-30", nil)
	rec = httptest.NewRecorder()
	handler.Occurrences(rec, setChiURLParam(req, "id", "rule-1"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
}

func TestRecurringHandler_Materialize(t *testing.T) {
	handler := NewRecurringHandler(&recurringServiceStub{
		materializeFn: func(ctx context.Context, now time.Time) (int, error) {
			if !now.Equal(handlerNow) {
				t.Fatalf("expected handler clock, got %v", now)
			}
			return 3, nil
		},
	})
	handler.clock = domain.FixedClock{At: handlerNow}

	rec := httptest.NewRecorder()
	handler.Materialize(rec, httptest.NewRequest(http.MethodPost, "/recurring-rules/materialize", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.MaterializeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Created != 3 {
		t.Fatalf("expected 3 created, got %d", resp.Created)
	}
}
