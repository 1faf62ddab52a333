package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockFiscalPeriodRepository
	mockBalance     *MockBalanceService
	service         portssvc.JournalSvcFacade
	ctx             context.Context
	actorID         string
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockPeriodRepo = new(MockFiscalPeriodRepository)
	s.mockBalance = new(MockBalanceService)
	s.service = services.NewJournalService(
		s.mockJournalRepo,
		s.mockPeriodRepo,
		services.NewAccountService(s.mockAccountRepo),
		s.mockBalance,
	)
	s.ctx = context.Background()
	s.actorID = "user-1"
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) activeAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":    {AccountID: "cash", Code: "1000", AccountType: domain.Asset, IsActive: true},
		"revenue": {AccountID: "revenue", Code: "4000", AccountType: domain.Revenue, IsActive: true},
	}
}

func (s *JournalServiceTestSuite) draftEntry() *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:        "entry-1",
		DocumentNumber: "JE-0001",
		EntryDate:      time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		EntryType:      domain.EntryManual,
		Narration:      "Cash sale",
		TotalDebit:     dec("500"),
		TotalCredit:    dec("500"),
		Status:         domain.StatusDraft,
		Lines: []domain.JournalLine{
			{LineID: "l1", EntryID: "entry-1", AccountID: "cash", LineNumber: 1, Debit: dec("500"), Credit: decimal.Zero},
			{LineID: "l2", EntryID: "entry-1", AccountID: "revenue", LineNumber: 2, Debit: decimal.Zero, Credit: dec("500")},
		},
	}
}

func (s *JournalServiceTestSuite) postedEntry() *domain.JournalEntry {
	e := s.draftEntry()
	e.Status = domain.StatusPosted
	postedAt := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	e.PostedBy, e.PostedAt = strPtr("user-0"), &postedAt
	return e
}

func balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		EntryType: domain.EntryManual,
		Narration: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: "cash", Debit: dec("500")},
			{AccountID: "revenue", Credit: dec("500")},
		},
	}
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{"cash", "revenue"}).Return(s.activeAccounts(), nil).Once()
	s.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("*domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.JournalEntry).DocumentNumber = "JE-0001"
		}).
		Return(nil).Once()

	entry, err := s.service.CreateJournalEntry(s.ctx, balancedRequest(), s.actorID)

	s.Require().NoError(err)
	s.Equal("JE-0001", entry.DocumentNumber)
	s.Equal(domain.StatusDraft, entry.Status)
	s.True(entry.TotalDebit.Equal(dec("500")))
	s.True(entry.TotalCredit.Equal(dec("500")))
	s.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), entry.EntryDate)
	s.Len(entry.Lines, 2)
	s.Equal(1, entry.Lines[0].LineNumber)
	s.Equal(entry.EntryID, entry.Lines[1].EntryID)
	s.Nil(entry.PostedBy)
	s.Equal(s.actorID, entry.CreatedBy)
	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_UnbalancedPersistsNothing() {
	req := balancedRequest()
	req.Lines[1].Credit = dec("450")

	entry, err := s.service.CreateJournalEntry(s.ctx, req, s.actorID)

	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "does not balance")
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_RejectsSystemTypes() {
	for _, entryType := range []domain.EntryType{domain.EntryAuto, domain.EntryReversal} {
		req := balancedRequest()
		req.EntryType = entryType

		_, err := s.service.CreateJournalEntry(s.ctx, req, s.actorID)

		s.ErrorIs(err, apperrors.ErrValidation, string(entryType))
	}
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalEntry_InactiveAccount() {
	accounts := s.activeAccounts()
	revenue := accounts["revenue"]
	revenue.IsActive = false
	accounts["revenue"] = revenue
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(accounts, nil).Once()

	_, err := s.service.CreateJournalEntry(s.ctx, balancedRequest(), s.actorID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_Success() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.activeAccounts(), nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()
	s.mockJournalRepo.On("MarkPosted", mock.Anything, "entry-1", (*string)(nil), s.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	s.mockBalance.On("Recompute", mock.Anything).Return(2, nil).Once()

	entry, err := s.service.PostJournalEntry(s.ctx, "entry-1", s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, entry.Status)
	s.Require().NotNil(entry.PostedBy)
	s.Equal(s.actorID, *entry.PostedBy)
	s.NotNil(entry.PostedAt)
	s.Nil(entry.FiscalPeriodID)
	s.mockJournalRepo.AssertExpectations(s.T())
	s.mockBalance.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_OpenPeriodIsStamped() {
	period := &domain.FiscalPeriod{PeriodID: "p-2025-01", Code: "2025-01", Status: domain.PeriodOpen}
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.activeAccounts(), nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(period, nil).Once()
	s.mockJournalRepo.On("MarkPosted", mock.Anything, "entry-1", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "p-2025-01"
	}), s.actorID, mock.Anything).Return(nil).Once()
	s.mockBalance.On("Recompute", mock.Anything).Return(2, nil).Once()

	entry, err := s.service.PostJournalEntry(s.ctx, "entry-1", s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(entry.FiscalPeriodID)
	s.Equal("p-2025-01", *entry.FiscalPeriodID)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.postedEntry(), nil).Once()

	entry, err := s.service.PostJournalEntry(s.ctx, "entry-1", s.actorID)

	s.Nil(entry)
	s.ErrorIs(err, apperrors.ErrState)
	s.mockJournalRepo.AssertNotCalled(s.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockBalance.AssertNotCalled(s.T(), "Recompute", mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_ClosedPeriod() {
	period := &domain.FiscalPeriod{PeriodID: "p-2024-12", Code: "2024-12", Status: domain.PeriodClosed}
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.activeAccounts(), nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(period, nil).Once()

	_, err := s.service.PostJournalEntry(s.ctx, "entry-1", s.actorID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "2024-12")
	s.mockJournalRepo.AssertNotCalled(s.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_RecomputeFailureKeepsPost() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.activeAccounts(), nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	s.mockJournalRepo.On("MarkPosted", mock.Anything, "entry-1", mock.Anything, s.actorID, mock.Anything).Return(nil).Once()
	s.mockBalance.On("Recompute", mock.Anything).Return(0, errors.New("db gone")).Once()

	entry, err := s.service.PostJournalEntry(s.ctx, "entry-1", s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, entry.Status)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_ConcurrentPostLosesGuardedUpdate() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.activeAccounts(), nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	s.mockJournalRepo.On("MarkPosted", mock.Anything, "entry-1", mock.Anything, s.actorID, mock.Anything).
		Return(apperrors.NewStateError("cannot post entry in status POSTED")).Once()

	_, err := s.service.PostJournalEntry(s.ctx, "entry-1", s.actorID)

	s.ErrorIs(err, apperrors.ErrState)
	s.mockBalance.AssertNotCalled(s.T(), "Recompute", mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournalEntry_NotFound() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.PostJournalEntry(s.ctx, "missing", s.actorID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestUpdateJournalLines_Draft() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(s.activeAccounts(), nil).Once()
	s.mockJournalRepo.On("ReplaceDraftLines", mock.Anything, "entry-1", mock.AnythingOfType("[]domain.JournalLine"),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(dec("750")) }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(dec("750")) }),
		s.actorID, mock.Anything).Return(nil).Once()

	req := dto.UpdateJournalLinesRequest{Lines: []dto.JournalLineRequest{
		{AccountID: "cash", Debit: dec("750")},
		{AccountID: "revenue", Credit: dec("750")},
	}}
	entry, err := s.service.UpdateJournalLines(s.ctx, "entry-1", req, s.actorID)

	s.Require().NoError(err)
	s.True(entry.TotalDebit.Equal(dec("750")))
	s.Len(entry.Lines, 2)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestUpdateJournalLines_PostedIsRejected() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.postedEntry(), nil).Once()

	req := dto.UpdateJournalLinesRequest{Lines: []dto.JournalLineRequest{
		{AccountID: "cash", Debit: dec("750")},
		{AccountID: "revenue", Credit: dec("750")},
	}}
	_, err := s.service.UpdateJournalLines(s.ctx, "entry-1", req, s.actorID)

	s.ErrorIs(err, apperrors.ErrState)
	s.mockJournalRepo.AssertNotCalled(s.T(), "ReplaceDraftLines", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestDeleteJournalEntry_Draft() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockJournalRepo.On("DeleteDraft", mock.Anything, "entry-1").Return(nil).Once()

	err := s.service.DeleteJournalEntry(s.ctx, "entry-1", s.actorID)

	s.NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestDeleteJournalEntry_PostedIsRejected() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.postedEntry(), nil).Once()

	err := s.service.DeleteJournalEntry(s.ctx, "entry-1", s.actorID)

	s.ErrorIs(err, apperrors.ErrState)
	s.mockJournalRepo.AssertNotCalled(s.T(), "DeleteDraft", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCancelJournalEntry() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()
	s.mockJournalRepo.On("MarkCancelled", mock.Anything, "entry-1", s.actorID, mock.Anything).Return(nil).Once()

	entry, err := s.service.CancelJournalEntry(s.ctx, "entry-1", s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.StatusCancelled, entry.Status)
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_SwapsLines() {
	original := s.postedEntry()
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(original, nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	var saved *domain.JournalEntry
	s.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("*domain.JournalEntry")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.JournalEntry) }).
		Return(nil).Once()
	s.mockBalance.On("Recompute", mock.Anything).Return(2, nil).Once()

	reversal, err := s.service.ReverseJournalEntry(s.ctx, "entry-1", s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Equal("REV-JE-0001", reversal.DocumentNumber)
	s.Equal(domain.EntryReversal, reversal.EntryType)
	s.Equal(domain.StatusPosted, reversal.Status)
	s.Require().NotNil(reversal.Reference)
	s.Equal("entry-1", reversal.Reference.ID)
	s.Equal("JE-0001", reversal.Reference.Number)
	s.Require().Len(reversal.Lines, 2)
	s.True(reversal.Lines[0].Credit.Equal(dec("500")))
	s.True(reversal.Lines[0].Debit.IsZero())
	s.True(reversal.Lines[1].Debit.Equal(dec("500")))
	s.Equal(reversal.EntryID, reversal.Lines[0].EntryID)
	s.NotEqual("l1", reversal.Lines[0].LineID)
	// the original is left as it was
	s.Equal(domain.StatusPosted, original.Status)
	s.True(original.Lines[0].Debit.Equal(dec("500")))
	s.mockJournalRepo.AssertNotCalled(s.T(), "MarkCancelled", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.mockBalance.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_DraftIsRejected() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.draftEntry(), nil).Once()

	_, err := s.service.ReverseJournalEntry(s.ctx, "entry-1", s.actorID)

	s.ErrorIs(err, apperrors.ErrState)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_ReversalIsRejected() {
	rev := s.postedEntry()
	rev.EntryType = domain.EntryReversal
	rev.DocumentNumber = "REV-JE-0001"
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(rev, nil).Once()

	_, err := s.service.ReverseJournalEntry(s.ctx, "entry-1", s.actorID)

	s.ErrorIs(err, apperrors.ErrState)
}

func (s *JournalServiceTestSuite) TestReverseJournalEntry_SecondReversalIsRejected() {
	s.mockJournalRepo.On("FindEntryByID", mock.Anything, "entry-1").Return(s.postedEntry(), nil).Once()
	s.mockPeriodRepo.On("FindPeriodForDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	s.mockJournalRepo.On("SaveEntry", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.ReverseJournalEntry(s.ctx, "entry-1", s.actorID)

	s.ErrorIs(err, apperrors.ErrState)
	s.Contains(err.Error(), "already been reversed")
	s.mockBalance.AssertNotCalled(s.T(), "Recompute", mock.Anything)
}

func (s *JournalServiceTestSuite) TestListJournalEntries() {
	posted := domain.StatusPosted
	s.mockJournalRepo.On("ListEntries", mock.Anything, domain.JournalFilter{Status: &posted}, 100, (*string)(nil)).
		Return([]domain.JournalEntry{*s.postedEntry()}, "next-token", nil).Once()

	res, err := s.service.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{Status: "POSTED", Limit: 1000})

	s.Require().NoError(err)
	s.Len(res.Entries, 1)
	s.Equal("JE-0001", res.Entries[0].DocumentNumber)
	s.Require().NotNil(res.NextToken)
	s.Equal("next-token", *res.NextToken)
}

func TestJournalService_GetJournalEntryNotFound(t *testing.T) {
	repo := new(MockJournalRepository)
	repo.On("FindEntryByID", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound)
	svc := services.NewJournalService(repo, nil, services.NewAccountService(new(MockAccountRepository)), nil)

	_, err := svc.GetJournalEntry(context.Background(), "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
