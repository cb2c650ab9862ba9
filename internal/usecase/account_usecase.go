package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	cache       Cache
	cacheTTL    time.Duration
	calendar    domain.Calendar
	clock       domain.Clock
	metrics     Metrics
	logger      zerolog.Logger
}

// AccountOption configures an AccountUseCase.
type AccountOption func(*AccountUseCase)

// WithAccountCache enables read-through caching of GetAccount.
func WithAccountCache(cache Cache, ttl time.Duration) AccountOption {
	return func(uc *AccountUseCase) {
		uc.cache = cache
		if ttl > 0 {
			uc.cacheTTL = ttl
		}
	}
}

// WithAccountCalendar replaces the TARGET2 calendar used for due dates.
func WithAccountCalendar(cal domain.Calendar) AccountOption {
	return func(uc *AccountUseCase) { uc.calendar = cal }
}

// WithAccountMetrics sets the metrics sink.
func WithAccountMetrics(m Metrics) AccountOption {
	return func(uc *AccountUseCase) { uc.metrics = m }
}

// WithAccountLogger sets the logger.
func WithAccountLogger(l zerolog.Logger) AccountOption {
	return func(uc *AccountUseCase) { uc.logger = l }
}

// WithAccountClock sets the clock used for timestamps.
func WithAccountClock(c domain.Clock) AccountOption {
	return func(uc *AccountUseCase) { uc.clock = c }
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, opts ...AccountOption) *AccountUseCase {
	uc := &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		cacheTTL:    DefaultAccountCacheTTL,
		calendar:    domain.Target2Calendar{},
		clock:       domain.SystemClock{},
		metrics:     NopMetrics{},
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name          string
	Kind          domain.AccountKind
	Currency      string
	PaymentDueDay *int
	PaymentShift  domain.ShiftDirection
}

// CreateAccount creates a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	now := uc.clock.Now().UTC()

	account := &domain.Account{
		ID:            uc.idGen.Generate(),
		Name:          input.Name,
		Kind:          input.Kind,
		Currency:      input.Currency,
		PaymentDueDay: input.PaymentDueDay,
		PaymentShift:  input.PaymentShift,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if account.PaymentDueDay != nil && account.PaymentShift == "" {
		account.PaymentShift = domain.ShiftNone
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if uc.cache == nil {
		return uc.accountRepo.GetByID(ctx, id)
	}

	key := accountCacheKeyPrefix + id

	if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
		var account domain.Account
		if err := json.Unmarshal(data, &account); err == nil {
			return &account, nil
		}
	} else if err != nil {
		uc.logger.Warn().Err(err).Str("account_id", id).Msg("account cache read failed")
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(account); err == nil {
		if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", id).Msg("account cache write failed")
		}
	}

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// NextPaymentDueDate returns the next payment due date of a scheduled account on or after from.
func (uc *AccountUseCase) NextPaymentDueDate(ctx context.Context, accountID string, from time.Time) (time.Time, error) {
	account, err := uc.GetAccount(ctx, accountID)
	if err != nil {
		return time.Time{}, err
	}

	schedule, err := account.PaymentDueDate()
	if err != nil {
		return time.Time{}, err
	}

	due, err := schedule.WithCalendar(uc.calendar).NextDueDate(from)
	if errors.Is(err, domain.ErrNoOpenDayFound) {
		uc.metrics.RecordNoOpenDayFound()
		uc.logger.Error().
			Err(err).
			Str("account_id", accountID).
			Int("due_day", schedule.DayOfMonth()).
			Str("shift", string(schedule.ShiftDirection())).
			Str("from", domain.Day(from).Format(domain.DateLayout)).
			Msg("closed-day calendar exhausted")
	}
	if err != nil {
		return time.Time{}, err
	}

	return due, nil
}
