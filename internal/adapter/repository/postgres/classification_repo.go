package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
)

// PayeeRepository implements usecase.PayeeRepository.
type PayeeRepository struct {
	queries *generated.Queries
}

// NewPayeeRepository creates a new PayeeRepository.
func NewPayeeRepository(db generated.DBTX) *PayeeRepository {
	return &PayeeRepository{queries: generated.New(db)}
}

func (r *PayeeRepository) Create(ctx context.Context, payee *domain.Payee) error {
	return r.queries.CreatePayee(ctx, generated.CreatePayeeParams{
		ID:        payee.ID,
		Name:      payee.Name,
		CreatedAt: timeToPgTimestamptz(payee.CreatedAt),
	})
}

func (r *PayeeRepository) GetByID(ctx context.Context, id string) (*domain.Payee, error) {
	row, err := r.queries.GetPayeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPayeeNotFound
		}
		return nil, err
	}

	return &domain.Payee{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.Time}, nil
}

func (r *PayeeRepository) List(ctx context.Context, limit, offset int) ([]*domain.Payee, error) {
	rows, err := r.queries.ListPayees(ctx, generated.ListPayeesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	payees := make([]*domain.Payee, 0, len(rows))
	for _, row := range rows {
		payees = append(payees, &domain.Payee{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.Time})
	}

	return payees, nil
}

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	queries *generated.Queries
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db generated.DBTX) *CategoryRepository {
	return &CategoryRepository{queries: generated.New(db)}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.queries.CreateCategory(ctx, generated.CreateCategoryParams{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: timeToPgTimestamptz(category.CreatedAt),
	})
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	row, err := r.queries.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}

	return &domain.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.Time}, nil
}

func (r *CategoryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Category, error) {
	rows, err := r.queries.ListCategories(ctx, generated.ListCategoriesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &domain.Category{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.Time})
	}

	return categories, nil
}
