package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/infrastructure/postgres/generated"
	"github.com/iho/budgetledger/internal/usecase"
)

// RecurringRuleRepository implements usecase.RecurringRuleRepository.
type RecurringRuleRepository struct {
	queries *generated.Queries
}

// NewRecurringRuleRepository creates a new RecurringRuleRepository.
func NewRecurringRuleRepository(db generated.DBTX) *RecurringRuleRepository {
	return &RecurringRuleRepository{queries: generated.New(db)}
}

// Create stores a rule.
func (r *RecurringRuleRepository) Create(ctx context.Context, rule *domain.RecurringRule) error {
	return r.queries.CreateRecurringRule(ctx, generated.CreateRecurringRuleParams{
		ID:             rule.ID,
		Name:           rule.Name,
		Type:           string(rule.Type),
		Frequency:      rule.Frequency.String(),
		StartDate:      dayToPgDate(rule.StartDate),
		EndDate:        optionalDay(rule.EndDate),
		LastOccurrence: optionalDay(rule.LastOccurrence),
		FromAccountID:  textOrNull(rule.FromAccountID),
		ToAccountID:    textOrNull(rule.ToAccountID),
		AccountID:      textOrNull(rule.AccountID),
		PayeeID:        textOrNull(rule.PayeeID),
		CategoryID:     textOrNull(rule.CategoryID),
		Amount:         decimalToNumeric(rule.Amount.Amount()),
		Currency:       rule.Amount.Currency(),
		Description:    rule.Description,
		Active:         rule.Active,
		CreatedAt:      timeToPgTimestamptz(rule.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(rule.UpdatedAt),
	})
}

// GetByID retrieves a rule by ID.
func (r *RecurringRuleRepository) GetByID(ctx context.Context, id string) (*domain.RecurringRule, error) {
	row, err := r.queries.GetRecurringRuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringRuleNotFound
		}
		return nil, err
	}

	return rowToRecurringRule(row)
}

// GetByIDForUpdate loads a rule and locks its row until tx ends.
func (r *RecurringRuleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.RecurringRule, error) {
	row, err := queriesFor(tx).GetRecurringRuleByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringRuleNotFound
		}
		return nil, err
	}

	return rowToRecurringRule(row)
}

// List lists rules by name with pagination.
func (r *RecurringRuleRepository) List(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error) {
	rows, err := r.queries.ListRecurringRules(ctx, generated.ListRecurringRulesParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToRecurringRules(rows)
}

// ListActive lists every active rule.
func (r *RecurringRuleRepository) ListActive(ctx context.Context) ([]*domain.RecurringRule, error) {
	rows, err := r.queries.ListActiveRecurringRules(ctx)
	if err != nil {
		return nil, err
	}

	return rowsToRecurringRules(rows)
}

// UpdateLastOccurrence advances the rule inside tx. It never moves
// last_occurrence backwards.
func (r *RecurringRuleRepository) UpdateLastOccurrence(ctx context.Context, tx usecase.Transaction, id string, last, updatedAt time.Time) error {
	return queriesFor(tx).UpdateRecurringRuleLastOccurrence(ctx, generated.UpdateRecurringRuleLastOccurrenceParams{
		ID:             id,
		LastOccurrence: dayToPgDate(last),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

func rowsToRecurringRules(rows []generated.RecurringRule) ([]*domain.RecurringRule, error) {
	rules := make([]*domain.RecurringRule, 0, len(rows))
	for _, row := range rows {
		rule, err := rowToRecurringRule(row)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func rowToRecurringRule(row generated.RecurringRule) (*domain.RecurringRule, error) {
	freq, err := domain.ParseFrequency(row.Frequency)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", row.ID, err)
	}

	amount, err := numericToDecimal(row.Amount)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", row.ID, err)
	}

	money, err := domain.NewMoney(amount, row.Currency)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", row.ID, err)
	}

	return &domain.RecurringRule{
		ID:             row.ID,
		Name:           row.Name,
		Type:           domain.TransactionType(row.Type),
		Frequency:      freq,
		StartDate:      pgDateToDay(row.StartDate),
		EndDate:        pgDateToOptionalDay(row.EndDate),
		LastOccurrence: pgDateToOptionalDay(row.LastOccurrence),
		FromAccountID:  row.FromAccountID.String,
		ToAccountID:    row.ToAccountID.String,
		AccountID:      row.AccountID.String,
		PayeeID:        row.PayeeID.String,
		CategoryID:     row.CategoryID.String,
		Amount:         money,
		Description:    row.Description,
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}
