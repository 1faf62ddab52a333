package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/metrics"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService derives account balances from posted lines only; it never trusts stored balances.
type balanceService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	accountRepo portsrepo.AccountRepositoryFacade
	metrics     *metrics.Ledger
}

// NewBalanceService creates the balance aggregator. m may be nil.
func NewBalanceService(journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountRepositoryFacade, m *metrics.Ledger) portssvc.BalanceSvc {
	return &balanceService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		metrics:     m,
	}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

// postedTotals loads per-account posted totals together with the accounts they belong to.
func (s *balanceService) postedTotals(ctx context.Context) (map[string]domain.AccountTotals, map[string]domain.Account, error) {
	totals, err := s.journalRepo.SumPostedLinesByAccount(ctx)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if err := checkAccountsKnown(totals, accounts); err != nil {
		return nil, nil, err
	}
	return totals, accounts, nil
}

func checkAccountsKnown(totals map[string]domain.AccountTotals, accounts map[string]domain.Account) error {
	for id := range totals {
		if _, ok := accounts[id]; !ok {
			return fmt.Errorf("%w: posted lines reference unknown account %s", apperrors.ErrInternal, id)
		}
	}
	return nil
}

// signedBalances converts posted totals into balances on each account's normal side.
func signedBalances(totals map[string]domain.AccountTotals, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	if err := checkAccountsKnown(totals, accounts); err != nil {
		return nil, err
	}
	balances := make(map[string]decimal.Decimal, len(totals))
	for id, t := range totals {
		balance, err := accounting.SignedBalance(accounts[id].AccountType, t.Debit, t.Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %v", apperrors.ErrInternal, id, err)
		}
		balances[id] = balance
	}
	return balances, nil
}

// Recompute reads and writes in one store transaction so concurrent recomputes cannot
// overwrite newer balances with older totals.
func (s *balanceService) Recompute(ctx context.Context) (int, error) {
	n, err := s.accountRepo.RecomputeBalances(ctx, signedBalances, s.Now())
	if err != nil {
		s.metrics.BalanceRecompute("error")
		return 0, err
	}

	s.metrics.BalanceRecompute("ok")
	s.LogDebug(ctx, "Account balances recomputed", slog.Int("accounts", n))
	return n, nil
}

func (s *balanceService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	totals, accounts, err := s.postedTotals(ctx)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(totals)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for id, t := range totals {
		account := accounts[id]
		balance, err := accounting.SignedBalance(account.AccountType, t.Debit, t.Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %v", apperrors.ErrInternal, id, err)
		}
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountID:   id,
			AccountCode: account.Code,
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       accounting.Round(t.Debit),
			Credit:      accounting.Round(t.Credit),
			Balance:     balance,
		})
		tb.TotalDebit = tb.TotalDebit.Add(accounting.Round(t.Debit))
		tb.TotalCredit = tb.TotalCredit.Add(accounting.Round(t.Credit))
	}

	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].AccountCode < tb.Rows[j].AccountCode })
	tb.Balanced = tb.TotalDebit.Equal(tb.TotalCredit)
	return tb, nil
}
