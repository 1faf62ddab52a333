package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.BalanceSvc
	ctx             context.Context
}

func (s *BalanceServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewBalanceService(s.mockJournalRepo, s.mockAccountRepo, nil)
	s.ctx = context.Background()
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}

func vendorBillTotals() map[string]domain.AccountTotals {
	return map[string]domain.AccountTotals{
		"purchases": {Debit: dec("1000"), Credit: decimal.Zero},
		"input_tax": {Debit: dec("180"), Credit: decimal.Zero},
		"payable":   {Debit: dec("200"), Credit: dec("1330")},
		"wht":       {Debit: decimal.Zero, Credit: dec("50")},
	}
}

func vendorBillAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"purchases": {AccountID: "purchases", Code: "5100", Name: "Purchases", AccountType: domain.Expense},
		"input_tax": {AccountID: "input_tax", Code: "1300", Name: "Input Tax", AccountType: domain.Asset},
		"payable":   {AccountID: "payable", Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability},
		"wht":       {AccountID: "wht", Code: "2100", Name: "Withholding Payable", AccountType: domain.Liability},
	}
}

// A posted vendor bill: purchases 1000 + input tax 180 against payable 1130 + withholding 50.
func (s *BalanceServiceTestSuite) expectVendorBillTotals() {
	s.mockJournalRepo.On("SumPostedLinesByAccount", mock.Anything).Return(vendorBillTotals(), nil).Once()
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).Return(vendorBillAccounts(), nil).Once()
}

func (s *BalanceServiceTestSuite) TestRecompute_SignsByAccountType() {
	s.mockAccountRepo.On("RecomputeBalances", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(vendorBillTotals(), vendorBillAccounts(), nil).Once()

	n, err := s.service.Recompute(s.ctx)

	s.Require().NoError(err)
	s.Equal(4, n)
	b := s.mockAccountRepo.Written
	s.Require().Len(b, 4)
	s.True(b["purchases"].Equal(dec("1000")))
	s.True(b["input_tax"].Equal(dec("180")))
	s.True(b["payable"].Equal(dec("1130")))
	s.True(b["wht"].Equal(dec("50")))
}

func (s *BalanceServiceTestSuite) TestRecompute_ReadsTotalsInsideTheStoreTransaction() {
	s.mockAccountRepo.On("RecomputeBalances", mock.Anything, mock.Anything).
		Return(vendorBillTotals(), vendorBillAccounts(), nil).Once()

	_, err := s.service.Recompute(s.ctx)

	s.Require().NoError(err)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SumPostedLinesByAccount", mock.Anything)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (s *BalanceServiceTestSuite) TestRecompute_UnknownAccountIsInternal() {
	s.mockAccountRepo.On("RecomputeBalances", mock.Anything, mock.Anything).Return(
		map[string]domain.AccountTotals{"ghost": {Debit: dec("10"), Credit: decimal.Zero}},
		map[string]domain.Account{},
		nil,
	).Once()

	_, err := s.service.Recompute(s.ctx)

	s.ErrorIs(err, apperrors.ErrInternal)
	s.Nil(s.mockAccountRepo.Written)
}

func (s *BalanceServiceTestSuite) TestRecompute_NothingPostedResetsAll() {
	s.mockAccountRepo.On("RecomputeBalances", mock.Anything, mock.Anything).
		Return(map[string]domain.AccountTotals{}, map[string]domain.Account{}, nil).Once()

	n, err := s.service.Recompute(s.ctx)

	s.Require().NoError(err)
	s.Equal(0, n)
	s.Empty(s.mockAccountRepo.Written)
}

func (s *BalanceServiceTestSuite) TestRecompute_StoreError() {
	s.mockAccountRepo.On("RecomputeBalances", mock.Anything, mock.Anything).
		Return(nil, nil, errors.New("lock timeout")).Once()

	_, err := s.service.Recompute(s.ctx)

	s.EqualError(err, "lock timeout")
}

func (s *BalanceServiceTestSuite) TestTrialBalance() {
	s.expectVendorBillTotals()

	tb, err := s.service.TrialBalance(s.ctx)

	s.Require().NoError(err)
	s.True(tb.Balanced)
	s.True(tb.TotalDebit.Equal(dec("1380")))
	s.True(tb.TotalCredit.Equal(dec("1380")))
	s.Require().Len(tb.Rows, 4)
	s.Equal("1300", tb.Rows[0].AccountCode)
	s.Equal("5100", tb.Rows[3].AccountCode)
	s.True(tb.Rows[1].Balance.Equal(dec("1130")))
}
