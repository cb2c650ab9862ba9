package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
)

// TransactionUseCase handles transfers, incomes and expenses.
type TransactionUseCase struct {
	txManager    TransactionManager
	payeeRepo    PayeeRepository
	categoryRepo CategoryRepository
	retrier      Retrier
	metrics      Metrics
	logger       zerolog.Logger
	recorder
}

// TransactionOption configures a TransactionUseCase.
type TransactionOption func(*TransactionUseCase)

// WithTransactionClock sets the clock used for the future-date rule.
func WithTransactionClock(c domain.Clock) TransactionOption {
	return func(uc *TransactionUseCase) { uc.clock = c }
}

// WithTransactionMetrics sets the metrics sink.
func WithTransactionMetrics(m Metrics) TransactionOption {
	return func(uc *TransactionUseCase) { uc.metrics = m }
}

// WithTransactionLogger sets the logger.
func WithTransactionLogger(l zerolog.Logger) TransactionOption {
	return func(uc *TransactionUseCase) { uc.logger = l }
}

// NewTransactionUseCase creates a new TransactionUseCase. outboxRepo may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	payeeRepo PayeeRepository,
	categoryRepo CategoryRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	opts ...TransactionOption,
) *TransactionUseCase {
	uc := &TransactionUseCase{
		txManager:    txManager,
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

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	// ID is optional; a ULID is generated when empty.
	ID            string
	Date          time.Time
	Description   string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
}

// CreateCategorizedInput represents input for creating an income or an expense.
type CreateCategorizedInput struct {
	ID          string
	Date        time.Time
	Description string
	PayeeID     string
	CategoryID  string
	AccountID   string
	Amount      decimal.Decimal
	Currency    string
}

// CreateTransfer records a transfer between two accounts.
func (uc *TransactionUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.Transaction, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	amount, err := uc.parseAmount(input.Amount, input.Currency, input.Description)
	if err != nil {
		return nil, err
	}

	t, err := domain.NewTransfer(uc.idOrNew(input.ID), input.Date, input.Description,
		input.FromAccountID, input.ToAccountID, amount, uc.clock)
	if err != nil {
		return nil, err
	}

	if err := uc.store(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// CreateIncome records money received from a payee.
func (uc *TransactionUseCase) CreateIncome(ctx context.Context, input CreateCategorizedInput) (*domain.Transaction, error) {
	return uc.createCategorized(ctx, input, domain.NewIncome)
}

// CreateExpense records money spent at a payee.
func (uc *TransactionUseCase) CreateExpense(ctx context.Context, input CreateCategorizedInput) (*domain.Transaction, error) {
	return uc.createCategorized(ctx, input, domain.NewExpense)
}

type categorizedFactory func(id string, date time.Time, description, payeeID, categoryID, accountID string, amount domain.Money, clock domain.Clock) (*domain.Transaction, error)

func (uc *TransactionUseCase) createCategorized(ctx context.Context, input CreateCategorizedInput, factory categorizedFactory) (*domain.Transaction, error) {
	amount, err := uc.parseAmount(input.Amount, input.Currency, input.Description)
	if err != nil {
		return nil, err
	}

	t, err := factory(uc.idOrNew(input.ID), input.Date, input.Description,
		input.PayeeID, input.CategoryID, input.AccountID, amount, uc.clock)
	if err != nil {
		return nil, err
	}

	if _, err := uc.payeeRepo.GetByID(ctx, t.PayeeID()); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.GetByID(ctx, t.CategoryID()); err != nil {
		return nil, err
	}

	if err := uc.store(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// ListTransactionsByAccountInput represents input for listing transactions.
type ListTransactionsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists transactions touching an account, newest first.
func (uc *TransactionUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.txRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// GetBalance returns the balance of an account at the end of asOf.
func (uc *TransactionUseCase) GetBalance(ctx context.Context, accountID string, asOf time.Time) (domain.Money, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	total, err := uc.txRepo.BalanceAsOf(ctx, accountID, domain.Day(asOf))
	if err != nil {
		return domain.Money{}, err
	}

	return domain.NewMoney(total, account.Currency)
}

// UpdateDescription replaces the description of a stored transaction.
func (uc *TransactionUseCase) UpdateDescription(ctx context.Context, id, description string) (*domain.Transaction, error) {
	if err := domain.ValidateDescription(description); err != nil {
		return nil, err
	}

	return uc.update(ctx, id, func(t *domain.Transaction) (*domain.Transaction, error) {
		return t.WithDescription(description), nil
	})
}

// UpdateDate moves a stored transaction to another day. The future-date rule applies.
func (uc *TransactionUseCase) UpdateDate(ctx context.Context, id string, date time.Time) (*domain.Transaction, error) {
	return uc.update(ctx, id, func(t *domain.Transaction) (*domain.Transaction, error) {
		return t.WithDate(date, uc.clock)
	})
}

// update runs change against the locked row so concurrent writers to one
// transaction are serialized.
func (uc *TransactionUseCase) update(ctx context.Context, id string, change func(*domain.Transaction) (*domain.Transaction, error)) (*domain.Transaction, error) {
	var updated *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		current, err := uc.txRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		next, err := change(current)
		if err != nil {
			return err
		}

		if err := uc.txRepo.UpdateHeader(ctx, tx, next); err != nil {
			return err
		}

		if err := uc.emit(ctx, tx, domain.EventTypeTransactionUpdated, next); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (uc *TransactionUseCase) store(ctx context.Context, t *domain.Transaction) error {
	err := uc.retrier.Retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := uc.insert(ctx, tx, t); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	uc.metrics.RecordTransactionCreated(string(t.Type()))
	uc.logger.Info().
		Str("transaction_id", t.ID()).
		Str("type", string(t.Type())).
		Str("date", t.Date().Format(domain.DateLayout)).
		Msg("transaction recorded")

	return nil
}

func (uc *TransactionUseCase) parseAmount(amount decimal.Decimal, currency, description string) (domain.Money, error) {
	if err := domain.ValidateDescription(description); err != nil {
		return domain.Money{}, err
	}

	if amount.GreaterThan(decimal.RequireFromString(MaxTransactionAmount)) {
		return domain.Money{}, domain.ErrAmountTooLarge
	}
	if err := domain.ValidateAmountScale(amount); err != nil {
		return domain.Money{}, err
	}

	return domain.NewMoney(amount, currency)
}

func (uc *TransactionUseCase) idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uc.idGen.Generate()
}
