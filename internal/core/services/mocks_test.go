package services_test

import (
	"context"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
	Written map[string]decimal.Decimal
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// RecomputeBalances runs compute over the totals and accounts given to Return, as the store does
// inside its transaction, and keeps the result in Written.
func (m *MockAccountRepository) RecomputeBalances(ctx context.Context, compute portsrepo.BalanceComputer, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	if err := args.Error(2); err != nil {
		return 0, err
	}
	balances, err := compute(args.Get(0).(map[string]domain.AccountTotals), args.Get(1).(map[string]domain.Account))
	if err != nil {
		return 0, err
	}
	m.Written = balances
	return len(balances), nil
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByDocumentNumber(ctx context.Context, documentNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SumPostedLinesByAccount(ctx context.Context) (map[string]domain.AccountTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountTotals), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceDraftLines(ctx context.Context, entryID string, lines []domain.JournalLine, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, lines, totalDebit, totalCredit, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, entryID string, fiscalPeriodID *string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, fiscalPeriodID, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkCancelled(ctx context.Context, entryID string, userID string, now time.Time) error {
	args := m.Called(ctx, entryID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValue(ctx context.Context, series domain.Series) (int64, error) {
	args := m.Called(ctx, series)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepository) NextValueWith(ctx context.Context, q portsrepo.Querier, series domain.Series) (int64, error) {
	args := m.Called(ctx, q, series)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepository) SeedValue(ctx context.Context, series domain.Series, lastValue int64) error {
	args := m.Called(ctx, series, lastValue)
	return args.Error(0)
}

func (m *MockSequenceRepository) ExistingNumbers(ctx context.Context, series domain.Series) ([]string, error) {
	args := m.Called(ctx, series)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock EventSourceRepository ---
type MockEventRepository struct {
	mock.Mock
}

var _ portsrepo.EventSourceRepository = (*MockEventRepository)(nil)

func (m *MockEventRepository) FindPOSSale(ctx context.Context, saleID string) (*domain.POSSale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POSSale), args.Error(1)
}

func (m *MockEventRepository) FindVendorBill(ctx context.Context, billID string) (*domain.VendorBill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorBill), args.Error(1)
}

func (m *MockEventRepository) FindStockAdjustment(ctx context.Context, adjustmentID string) (*domain.StockAdjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockAdjustment), args.Error(1)
}

func (m *MockEventRepository) FindFuelLog(ctx context.Context, fuelLogID string) (*domain.FuelLog, error) {
	args := m.Called(ctx, fuelLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelLog), args.Error(1)
}

// --- Mock FiscalPeriodRepository ---
type MockFiscalPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.FiscalPeriodRepository = (*MockFiscalPeriodRepository)(nil)

func (m *MockFiscalPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

// --- Mock OutboxRepository ---
type MockOutboxRepository struct {
	mock.Mock
}

var _ portsrepo.OutboxRepository = (*MockOutboxRepository)(nil)

func (m *MockOutboxRepository) Enqueue(ctx context.Context, intent domain.PostingIntent) error {
	args := m.Called(ctx, intent)
	return args.Error(0)
}

func (m *MockOutboxRepository) EnqueueWith(ctx context.Context, q portsrepo.Querier, intent domain.PostingIntent) error {
	args := m.Called(ctx, q, intent)
	return args.Error(0)
}

func (m *MockOutboxRepository) LeaseDue(ctx context.Context, now time.Time, limit int, leaseFor time.Duration) ([]domain.PostingIntent, error) {
	args := m.Called(ctx, now, limit, leaseFor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostingIntent), args.Error(1)
}

func (m *MockOutboxRepository) MarkDone(ctx context.Context, intentID string, now time.Time) error {
	args := m.Called(ctx, intentID, now)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, intentID string, attempts int, lastErr string, nextAttemptAt time.Time, dead bool, now time.Time) error {
	args := m.Called(ctx, intentID, attempts, lastErr, nextAttemptAt, dead, now)
	return args.Error(0)
}

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

var _ portssvc.BalanceSvc = (*MockBalanceService)(nil)

func (m *MockBalanceService) Recompute(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBalanceService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostForEvent(ctx context.Context, eventType domain.EventType, eventID string, actorID string) (*domain.PostingResult, error) {
	args := m.Called(ctx, eventType, eventID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingResult), args.Error(1)
}

func (m *MockPostingService) Trigger(ctx context.Context, eventType domain.EventType, eventID string, actorID string) {
	m.Called(ctx, eventType, eventID, actorID)
}

// --- helpers ---

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}
