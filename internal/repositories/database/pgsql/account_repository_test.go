package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

var accountRowColumns = []string{
	"account_id", "code", "name", "account_type", "is_active", "balance",
	"created_at", "created_by", "last_updated_at", "last_updated_by",
}

type AccountRepositoryTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *PgxAccountRepository
	ctx  context.Context
	now  time.Time
}

func (s *AccountRepositoryTestSuite) SetupTest() {
	m, err := pgxmock.NewPool()
	s.Require().NoError(err)
	s.mock = m
	s.repo = newPgxAccountRepository(m)
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
}

func (s *AccountRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestAccountRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRepositoryTestSuite))
}

func (s *AccountRepositoryTestSuite) cashRow() *pgxmock.Rows {
	return pgxmock.NewRows(accountRowColumns).AddRow(
		cashUUID, "1000", "Cash", "ASSET", true, decimal.Zero,
		s.now, "setup", s.now, "setup",
	)
}

func (s *AccountRepositoryTestSuite) TestFindAccountsByIDs_SkipsIDsThatAreNotUUIDs() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE account_id = ANY($1)")).
		WithArgs([]string{cashUUID}).
		WillReturnRows(s.cashRow())

	accounts, err := s.repo.FindAccountsByIDs(s.ctx, []string{"abc", cashUUID})

	s.Require().NoError(err)
	s.Len(accounts, 1)
	s.Equal("1000", accounts[cashUUID].Code)
	s.NotContains(accounts, "abc")
}

func (s *AccountRepositoryTestSuite) TestFindAccountsByIDs_OnlyBadIDsSkipTheQuery() {
	accounts, err := s.repo.FindAccountsByIDs(s.ctx, []string{"abc", "1000"})

	s.Require().NoError(err)
	s.Empty(accounts)
}

func (s *AccountRepositoryTestSuite) TestNonUUIDAccountIDIsNotFound() {
	_, err := s.repo.FindAccountByID(s.ctx, "abc")
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.ErrorIs(s.repo.DeactivateAccount(s.ctx, "abc", "admin", s.now), apperrors.ErrNotFound)
}

func (s *AccountRepositoryTestSuite) TestFindAccountByID_Missing() {
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE account_id = $1")).
		WithArgs(cashUUID).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.repo.FindAccountByID(s.ctx, cashUUID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountRepositoryTestSuite) TestRecomputeBalances_ReadsAndWritesUnderLock() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(balanceLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM journal_lines jl")).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "debit", "credit"}).
			AddRow(cashUUID, decimal.RequireFromString("500"), decimal.RequireFromString("350")))
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE account_id = ANY($1)")).
		WithArgs([]string{cashUUID}).
		WillReturnRows(s.cashRow())
	s.mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET balance = 0")).
		WithArgs([]string{cashUUID}, s.now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	s.mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET balance = $2")).
		WithArgs(cashUUID, pgxmock.AnyArg(), s.now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectCommit()

	var seen map[string]domain.AccountTotals
	compute := func(totals map[string]domain.AccountTotals, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
		seen = totals
		s.Equal(domain.Asset, accounts[cashUUID].AccountType)
		return map[string]decimal.Decimal{cashUUID: decimal.RequireFromString("150")}, nil
	}

	n, err := s.repo.RecomputeBalances(s.ctx, compute, s.now)

	s.Require().NoError(err)
	s.Equal(1, n)
	s.True(seen[cashUUID].Debit.Equal(decimal.RequireFromString("500")))
	s.True(seen[cashUUID].Credit.Equal(decimal.RequireFromString("350")))
}

func (s *AccountRepositoryTestSuite) TestRecomputeBalances_ComputeFailureWritesNothing() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(balanceLockKey).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM journal_lines jl")).
		WillReturnRows(pgxmock.NewRows([]string{"account_id", "debit", "credit"}))
	s.mock.ExpectRollback()

	compute := func(map[string]domain.AccountTotals, map[string]domain.Account) (map[string]decimal.Decimal, error) {
		return nil, errors.New("unknown account type")
	}

	n, err := s.repo.RecomputeBalances(s.ctx, compute, s.now)

	s.EqualError(err, "unknown account type")
	s.Zero(n)
}

func (s *AccountRepositoryTestSuite) TestRecomputeBalances_LockFailureWritesNothing() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(balanceLockKey).
		WillReturnError(errors.New("canceling statement due to lock timeout"))
	s.mock.ExpectRollback()

	_, err := s.repo.RecomputeBalances(s.ctx, signedForTest, s.now)

	s.ErrorContains(err, "lock timeout")
}

func signedForTest(map[string]domain.AccountTotals, map[string]domain.Account) (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}
