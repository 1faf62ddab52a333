package handlers_test

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	args := m.Called(ctx, accountID, actorID)
	return args.Error(0)
}

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID))
}

func (m *MockJournalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

func (m *MockJournalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, actorID))
}

func (m *MockJournalService) UpdateJournalLines(ctx context.Context, entryID string, req dto.UpdateJournalLinesRequest, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, req, actorID))
}

func (m *MockJournalService) PostJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, actorID))
}

func (m *MockJournalService) CancelJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, actorID))
}

func (m *MockJournalService) DeleteJournalEntry(ctx context.Context, entryID string, actorID string) error {
	args := m.Called(ctx, entryID, actorID)
	return args.Error(0)
}

func (m *MockJournalService) ReverseJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, actorID))
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

// --- Mock OutboxService ---
type MockOutboxService struct {
	mock.Mock
}

var _ portssvc.OutboxSvc = (*MockOutboxService)(nil)

func (m *MockOutboxService) Enqueue(ctx context.Context, eventType domain.EventType, eventID string, actorID string) (*domain.PostingIntent, error) {
	args := m.Called(ctx, eventType, eventID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PostingIntent), args.Error(1)
}

func (m *MockOutboxService) ProcessDue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOutboxService) Run(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock SequenceService ---
type MockSequenceService struct {
	mock.Mock
}

var _ portssvc.SequenceSvc = (*MockSequenceService)(nil)

func (m *MockSequenceService) Next(ctx context.Context, prefix string) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockSequenceService) SeedFromExisting(ctx context.Context) error {
	args := m.Called(ctx)
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
