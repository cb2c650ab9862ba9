package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
	"github.com/iho/budgetledger/internal/usecase/mocks"
)

type recurringFixture struct {
	*txFixture
	rules *mocks.MockRecurringRuleRepository
}

func newRecurringFixture(t *testing.T) *recurringFixture {
	f := newTxFixture(t)
	return &recurringFixture{txFixture: f, rules: mocks.NewMockRecurringRuleRepository(f.ctrl)}
}

func (f *recurringFixture) useCase() *usecase.RecurringUseCase {
	return usecase.NewRecurringUseCase(
		f.txMgr, f.rules, f.accounts, f.payees, f.categories, f.txRepo, f.outbox, f.idGen, passThroughRetrier{},
		usecase.WithRecurringClock(domain.FixedClock{At: fixedNow}),
		usecase.WithRecurringMetrics(f.metrics),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func eur(t *testing.T, amount string) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(decimal.RequireFromString(amount), "EUR")
	if err != nil {
		t.Fatalf("money: %v", err)
	}
	return m
}

func rentRule(t *testing.T, id string, start time.Time) *domain.RecurringRule {
	freq, err := domain.ParseFrequency("monthly")
	if err != nil {
		t.Fatalf("frequency: %v", err)
	}
	return &domain.RecurringRule{
		ID:         id,
		Name:       "Rent",
		Type:       domain.TransactionTypeExpense,
		Frequency:  freq,
		StartDate:  start,
		AccountID:  "main",
		PayeeID:    "landlord",
		CategoryID: "housing",
		Amount:     eur(t, "950"),
		Active:     true,
	}
}

func TestRecurringUseCase_CreateRule(t *testing.T) {
	f := newRecurringFixture(t)

	f.idGen.EXPECT().Generate().Return("rule-1")
	f.accounts.EXPECT().GetByID(gomock.Any(), "main").Return(eurAccount("main"), nil)
	f.payees.EXPECT().GetByID(gomock.Any(), "landlord").Return(&domain.Payee{ID: "landlord"}, nil)
	f.categories.EXPECT().GetByID(gomock.Any(), "housing").Return(&domain.Category{ID: "housing"}, nil)
	f.rules.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	rule, err := f.useCase().CreateRule(context.Background(), usecase.CreateRuleInput{
		Name:       "Rent",
		Type:       "expense",
		Frequency:  "Monthly",
		StartDate:  time.Date(2025, 1, 31, 18, 0, 0, 0, time.UTC),
		AccountID:  "main",
		PayeeID:    "landlord",
		CategoryID: "housing",
		Amount:     decimal.RequireFromString("950"),
		Currency:   "EUR",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rule.StartDate.Equal(date(2025, 1, 31)) {
		t.Errorf("start date should be truncated to a day, got %s", rule.StartDate)
	}
	if !rule.Active || rule.ID != "rule-1" {
		t.Errorf("unexpected rule %+v", rule)
	}
}

func TestRecurringUseCase_CreateRule_Rejections(t *testing.T) {
	base := usecase.CreateRuleInput{
		Name:          "Savings",
		Type:          "transfer",
		Frequency:     "weekly",
		StartDate:     date(2025, 1, 6),
		FromAccountID: "main",
		ToAccountID:   "savings",
		Amount:        decimal.RequireFromString("50"),
		Currency:      "EUR",
	}

	tests := []struct {
		name    string
		mutate  func(*usecase.CreateRuleInput)
		wantErr error
	}{
		{"unknown type", func(in *usecase.CreateRuleInput) { in.Type = "refund" }, domain.ErrInvalidTransactionType},
		{"unknown cadence", func(in *usecase.CreateRuleInput) { in.Frequency = "daily" }, domain.ErrInvalidCadence},
		{"same account", func(in *usecase.CreateRuleInput) { in.ToAccountID = "main" }, domain.ErrSameAccount},
		{"end before start", func(in *usecase.CreateRuleInput) {
			end := date(2024, 12, 31)
			in.EndDate = &end
		}, domain.ErrInvalidRange},
		{"negative amount", func(in *usecase.CreateRuleInput) { in.Amount = decimal.NewFromInt(-5) }, domain.ErrNonPositiveAmount},
		{"sub-cent amount", func(in *usecase.CreateRuleInput) { in.Amount = decimal.RequireFromString("0.004") }, domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecurringFixture(t)
			f.idGen.EXPECT().Generate().Return("rule-1").AnyTimes()

			input := base
			tt.mutate(&input)

			if _, err := f.useCase().CreateRule(context.Background(), input); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecurringUseCase_CreateRule_CurrencyMismatch(t *testing.T) {
	f := newRecurringFixture(t)

	f.idGen.EXPECT().Generate().Return("rule-1")
	f.accounts.EXPECT().GetByID(gomock.Any(), "main").Return(&domain.Account{ID: "main", Currency: "USD"}, nil)

	rule := rentRule(t, "", date(2025, 1, 1))
	_, err := f.useCase().CreateRule(context.Background(), usecase.CreateRuleInput{
		Name:       rule.Name,
		Type:       "expense",
		Frequency:  "monthly",
		StartDate:  rule.StartDate,
		AccountID:  "main",
		PayeeID:    "landlord",
		CategoryID: "housing",
		Amount:     decimal.RequireFromString("950"),
		Currency:   "EUR",
	})
	if !errors.Is(err, domain.ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestRecurringUseCase_PreviewOccurrences(t *testing.T) {
	f := newRecurringFixture(t)

	f.rules.EXPECT().GetByID(gomock.Any(), "rent").Return(rentRule(t, "rent", date(2025, 1, 31)), nil)

	got, err := f.useCase().PreviewOccurrences(context.Background(), "rent", date(2025, 2, 1), date(2025, 4, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{date(2025, 3, 3), date(2025, 4, 3)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("occurrence %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestRecurringUseCase_PreviewOccurrences_InvalidRange(t *testing.T) {
	f := newRecurringFixture(t)

	_, err := f.useCase().PreviewOccurrences(context.Background(), "rent", date(2025, 5, 1), date(2025, 4, 1))
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRecurringUseCase_MaterializeDue(t *testing.T) {
	f := newRecurringFixture(t)

	rent := rentRule(t, "rent", date(2025, 5, 1))
	broken := rentRule(t, "broken", date(2025, 6, 1))

	f.rules.EXPECT().ListActive(gomock.Any()).Return([]*domain.RecurringRule{rent, broken}, nil)
	f.txMgr.EXPECT().Begin(gomock.Any()).Return(f.tx, nil).Times(3)
	f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).Times(3)
	f.tx.EXPECT().Commit(gomock.Any()).Return(nil).Times(2)

	// rent: 1 May already exists, 1 June is new.
	gomock.InOrder(
		f.rules.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "rent").Return(rent, nil),
		f.accounts.EXPECT().GetByIDs(gomock.Any(), f.tx, []string{"main"}).Return([]*domain.Account{eurAccount("main")}, nil),
		f.txRepo.EXPECT().Exists(gomock.Any(), f.tx, "rent-20250501").Return(true, nil),
		f.rules.EXPECT().UpdateLastOccurrence(gomock.Any(), f.tx, "rent", date(2025, 5, 1), fixedNow).Return(nil),

		f.rules.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "rent").Return(rent, nil),
		f.accounts.EXPECT().GetByIDs(gomock.Any(), f.tx, []string{"main"}).Return([]*domain.Account{eurAccount("main")}, nil),
		f.txRepo.EXPECT().Exists(gomock.Any(), f.tx, "rent-20250601").Return(false, nil),
		f.txRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil),
		f.outbox.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil),
		f.rules.EXPECT().UpdateLastOccurrence(gomock.Any(), f.tx, "rent", date(2025, 6, 1), fixedNow).Return(nil),

		f.rules.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "broken").Return(broken, nil),
		f.accounts.EXPECT().GetByIDs(gomock.Any(), f.tx, []string{"main"}).Return(nil, errors.New("connection reset")),
	)
	f.idGen.EXPECT().Generate().Return("evt-1")
	f.metrics.EXPECT().RecordTransactionCreated("expense")
	f.metrics.EXPECT().RecordRecurringMaterialized(1)

	created, err := f.useCase().MaterializeDue(context.Background(), fixedNow)
	if err != nil {
		t.Fatalf("a failing rule must not fail the run: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 created transaction, got %d", created)
	}
	if rent.LastOccurrence == nil || !rent.LastOccurrence.Equal(date(2025, 6, 1)) {
		t.Errorf("rent should be advanced to 2025-06-01, got %v", rent.LastOccurrence)
	}
	if broken.LastOccurrence != nil {
		t.Errorf("broken rule must not advance, got %v", broken.LastOccurrence)
	}
}

func TestRecurringUseCase_MaterializeDue_StopsOnCancellation(t *testing.T) {
	f := newRecurringFixture(t)

	f.rules.EXPECT().ListActive(gomock.Any()).Return([]*domain.RecurringRule{rentRule(t, "rent", date(2025, 6, 1))}, nil)
	f.txMgr.EXPECT().Begin(gomock.Any()).Return(nil, context.Canceled)

	_, err := f.useCase().MaterializeDue(context.Background(), fixedNow)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecurringUseCase_MaterializeDue_ListError(t *testing.T) {
	f := newRecurringFixture(t)

	f.rules.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("db down"))

	if _, err := f.useCase().MaterializeDue(context.Background(), fixedNow); err == nil {
		t.Fatal("expected error")
	}
}
