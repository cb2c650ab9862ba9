package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
)

type classificationServiceStub struct {
	payees     map[string]*domain.Payee
	categories map[string]*domain.Category
	listErr    error
	lastLimit  int
	lastOffset int
}

func (s *classificationServiceStub) CreatePayee(ctx context.Context, name string) (*domain.Payee, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	return &domain.Payee{ID: "payee-1", Name: name}, nil
}

func (s *classificationServiceStub) GetPayee(ctx context.Context, id string) (*domain.Payee, error) {
	if p, ok := s.payees[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPayeeNotFound
}

func (s *classificationServiceStub) ListPayees(ctx context.Context, limit, offset int) ([]*domain.Payee, error) {
	s.lastLimit, s.lastOffset = limit, offset
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.Payee
	for _, p := range s.payees {
		out = append(out, p)
	}
	return out, nil
}

func (s *classificationServiceStub) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	return &domain.Category{ID: "cat-1", Name: name}, nil
}

func (s *classificationServiceStub) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (s *classificationServiceStub) ListCategories(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []*domain.Category
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func TestClassificationHandler_CreatePayee(t *testing.T) {
	handler := NewClassificationHandler(&classificationServiceStub{})

	rec := httptest.NewRecorder()
	handler.CreatePayee(rec, httptest.NewRequest(http.MethodPost, "/payees", bytes.NewBufferString(`{"name":"Landlord"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp dto.NamedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "Landlord" {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec = httptest.NewRecorder()
	handler.CreatePayee(rec, httptest.NewRequest(http.MethodPost, "/payees", bytes.NewBufferString(`{"name":""}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty name, got %d", rec.Code)
	}
}

func TestClassificationHandler_GetAndList(t *testing.T) {
	stub := &classificationServiceStub{
		payees:     map[string]*domain.Payee{"landlord": {ID: "landlord", Name: "Landlord"}},
		categories: map[string]*domain.Category{"housing": {ID: "housing", Name: "Housing"}},
	}
	handler := NewClassificationHandler(stub)

	rec := httptest.NewRecorder()
	handler.GetPayee(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/payees/landlord", nil), "id", "landlord"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.GetCategory(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/categories/food", nil), "id", "food"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ListPayees(rec, httptest.NewRequest(http.MethodGet, "/payees?limit=50&offset=10", nil))
	if rec.Code != http.StatusOK || stub.lastLimit != 50 || stub.lastOffset != 10 {
		t.Fatalf("unexpected list call: code=%d limit=%d offset=%d", rec.Code, stub.lastLimit, stub.lastOffset)
	}

	rec = httptest.NewRecorder()
	handler.CreateCategory(rec, httptest.NewRequest(http.MethodPost, "/categories", bytes.NewBufferString(`{"name":"Food"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestClassificationHandler_ListError(t *testing.T) {
	handler := NewClassificationHandler(&classificationServiceStub{listErr: errors.New("db down")})

	rec := httptest.NewRecorder()
	handler.ListCategories(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
