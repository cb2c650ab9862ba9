package usecase

import (
	"context"
	"strings"

	"github.com/iho/budgetledger/internal/domain"
)

// ClassificationUseCase manages payees and categories.
type ClassificationUseCase struct {
	payeeRepo    PayeeRepository
	categoryRepo CategoryRepository
	idGen        IDGenerator
	clock        domain.Clock
}

// NewClassificationUseCase creates a new ClassificationUseCase.
func NewClassificationUseCase(payeeRepo PayeeRepository, categoryRepo CategoryRepository, idGen IDGenerator) *ClassificationUseCase {
	return &ClassificationUseCase{
		payeeRepo:    payeeRepo,
		categoryRepo: categoryRepo,
		idGen:        idGen,
		clock:        domain.SystemClock{},
	}
}

// CreatePayee creates a payee.
func (uc *ClassificationUseCase) CreatePayee(ctx context.Context, name string) (*domain.Payee, error) {
	payee := &domain.Payee{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(name),
		CreatedAt: uc.clock.Now().UTC(),
	}

	if err := payee.Validate(); err != nil {
		return nil, err
	}

	if err := uc.payeeRepo.Create(ctx, payee); err != nil {
		return nil, err
	}

	return payee, nil
}

// GetPayee retrieves a payee by ID.
func (uc *ClassificationUseCase) GetPayee(ctx context.Context, id string) (*domain.Payee, error) {
	return uc.payeeRepo.GetByID(ctx, id)
}

// ListPayees lists payees by name.
func (uc *ClassificationUseCase) ListPayees(ctx context.Context, limit, offset int) ([]*domain.Payee, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.payeeRepo.List(ctx, limit, offset)
}

// CreateCategory creates a category.
func (uc *ClassificationUseCase) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(name),
		CreatedAt: uc.clock.Now().UTC(),
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID.
func (uc *ClassificationUseCase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// ListCategories lists categories by name.
func (uc *ClassificationUseCase) ListCategories(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.categoryRepo.List(ctx, limit, offset)
}
