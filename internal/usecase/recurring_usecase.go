package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
)

// RecurringUseCase manages recurring rules and turns due occurrences into transactions.
type RecurringUseCase struct {
	txManager    TransactionManager
	ruleRepo     RecurringRuleRepository
	payeeRepo    PayeeRepository
	categoryRepo CategoryRepository
	retrier      Retrier
	metrics      Metrics
	logger       zerolog.Logger
	recorder
}

// RecurringOption configures a RecurringUseCase.
type RecurringOption func(*RecurringUseCase)

// WithRecurringClock sets the clock.
func WithRecurringClock(c domain.Clock) RecurringOption {
	return func(uc *RecurringUseCase) { uc.clock = c }
}

// WithRecurringMetrics sets the metrics sink.
func WithRecurringMetrics(m Metrics) RecurringOption {
	return func(uc *RecurringUseCase) { uc.metrics = m }
}

// WithRecurringLogger sets the logger.
func WithRecurringLogger(l zerolog.Logger) RecurringOption {
	return func(uc *RecurringUseCase) { uc.logger = l }
}

// NewRecurringUseCase creates a new RecurringUseCase. outboxRepo may be nil.
func NewRecurringUseCase(
	txManager TransactionManager,
	ruleRepo RecurringRuleRepository,
	accountRepo AccountRepository,
	payeeRepo PayeeRepository,
	categoryRepo CategoryRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	opts ...RecurringOption,
) *RecurringUseCase {
	uc := &RecurringUseCase{
		txManager:    txManager,
		ruleRepo:     ruleRepo,
		payeeRepo:    payeeRepo,
		categoryRepo: categoryRepo,
		retrier:      retrier,
		metrics:      NopMetrics{},
		logger:       zerolog.Nop(),
		recorder: recorder{
			accountRepo: accountRepo,
			txRepo:      txRepo,
			outboxRepo:  outboxRepo,
			idGen:       idGen,
			clock:       domain.SystemClock{},
		},
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateRuleInput represents input for creating a recurring rule.
type CreateRuleInput struct {
	Name          string
	Type          string
	Frequency     string
	StartDate     time.Time
	EndDate       *time.Time
	FromAccountID string
	ToAccountID   string
	AccountID     string
	PayeeID       string
	CategoryID    string
	Amount        decimal.Decimal
	Currency      string
	Description   string
}

// CreateRule validates and stores a recurring rule.
func (uc *RecurringUseCase) CreateRule(ctx context.Context, input CreateRuleInput) (*domain.RecurringRule, error) {
	txType, err := domain.ParseTransactionType(input.Type)
	if err != nil {
		return nil, err
	}

	freq, err := domain.ParseFrequency(input.Frequency)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateAmountScale(input.Amount); err != nil {
		return nil, err
	}

	amount, err := domain.NewMoney(input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()

	rule := &domain.RecurringRule{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		Type:          txType,
		Frequency:     freq,
		StartDate:     domain.Day(input.StartDate),
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		AccountID:     input.AccountID,
		PayeeID:       input.PayeeID,
		CategoryID:    input.CategoryID,
		Amount:        amount,
		Description:   input.Description,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.EndDate != nil {
		end := domain.Day(*input.EndDate)
		rule.EndDate = &end
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := uc.checkReferences(ctx, rule); err != nil {
		return nil, err
	}

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

func (uc *RecurringUseCase) checkReferences(ctx context.Context, rule *domain.RecurringRule) error {
	for _, id := range rule.AccountIDs() {
		account, err := uc.accountRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := account.Accepts(rule.Amount); err != nil {
			return err
		}
	}

	if rule.Type == domain.TransactionTypeTransfer {
		return nil
	}

	if _, err := uc.payeeRepo.GetByID(ctx, rule.PayeeID); err != nil {
		return err
	}

	_, err := uc.categoryRepo.GetByID(ctx, rule.CategoryID)
	return err
}

// GetRule retrieves a rule by ID.
func (uc *RecurringUseCase) GetRule(ctx context.Context, id string) (*domain.RecurringRule, error) {
	return uc.ruleRepo.GetByID(ctx, id)
}

// ListRules lists rules with pagination.
func (uc *RecurringUseCase) ListRules(ctx context.Context, limit, offset int) ([]*domain.RecurringRule, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.ruleRepo.List(ctx, limit, offset)
}

// PreviewOccurrences lists the rule's scheduled dates between from and to inclusive,
// whether or not they were materialized.
func (uc *RecurringUseCase) PreviewOccurrences(ctx context.Context, ruleID string, from, to time.Time) ([]time.Time, error) {
	if domain.Day(from).After(domain.Day(to)) {
		return nil, domain.ErrInvalidRange
	}

	rule, err := uc.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	return previewRule(rule, from, to)
}

func previewRule(rule *domain.RecurringRule, from, to time.Time) ([]time.Time, error) {
	end := domain.Day(to)
	if rule.EndDate != nil && rule.EndDate.Before(end) {
		end = *rule.EndDate
	}

	if end.Before(rule.StartDate) {
		return []time.Time{}, nil
	}

	all, err := rule.Frequency.OccurrencesBetween(rule.StartDate, end)
	if err != nil {
		return nil, err
	}

	start := domain.Day(from)
	out := make([]time.Time, 0, len(all))
	for _, d := range all {
		if !d.Before(start) {
			out = append(out, d)
		}
	}

	return out, nil
}

// MaterializeDue creates the pending transactions of every active rule up to now.
// Occurrences whose transaction already exists are skipped. A failing rule is logged
// and left at its last good occurrence; the other rules still run.
func (uc *RecurringUseCase) MaterializeDue(ctx context.Context, now time.Time) (int, error) {
	rules, err := uc.ruleRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, rule := range rules {
		n, err := uc.materializeRule(ctx, rule, now)
		created += n
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return created, err
			}
			uc.logger.Error().
				Err(err).
				Str("rule_id", rule.ID).
				Str("rule", rule.Name).
				Msg("recurring rule materialization failed")
		}
	}

	uc.metrics.RecordRecurringMaterialized(created)
	if created > 0 {
		uc.logger.Info().Int("created", created).Msg("recurring transactions materialized")
	}

	return created, nil
}

func (uc *RecurringUseCase) materializeRule(ctx context.Context, rule *domain.RecurringRule, now time.Time) (int, error) {
	pending, err := rule.PendingOccurrences(now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, date := range pending {
		inserted, err := uc.materializeOccurrence(ctx, rule, date)
		if err != nil {
			return created, fmt.Errorf("occurrence %s: %w", date.Format(domain.DateLayout), err)
		}
		if inserted {
			created++
		}

		last := date
		rule.LastOccurrence = &last
	}

	return created, nil
}

// materializeOccurrence stores one occurrence and advances the rule in the same
// database transaction.
func (uc *RecurringUseCase) materializeOccurrence(ctx context.Context, rule *domain.RecurringRule, date time.Time) (bool, error) {
	t, err := rule.BuildTransaction(date, uc.clock)
	if err != nil {
		return false, err
	}

	inserted := false
	err = uc.retrier.Retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Serializes concurrent materializers of the same rule.
		if _, err := uc.ruleRepo.GetByIDForUpdate(ctx, tx, rule.ID); err != nil {
			return err
		}

		inserted = false
		switch err := uc.insert(ctx, tx, t); {
		case err == nil:
			inserted = true
		case errors.Is(err, domain.ErrDuplicateTransaction):
		default:
			return err
		}

		if err := uc.ruleRepo.UpdateLastOccurrence(ctx, tx, rule.ID, date, uc.clock.Now().UTC()); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return false, err
	}

	if inserted {
		uc.metrics.RecordTransactionCreated(string(t.Type()))
	}

	return inserted, nil
}
