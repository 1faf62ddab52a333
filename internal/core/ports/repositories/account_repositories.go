package repositories

import (
	"context"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its chart-of-accounts code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// RecomputeBalances reads posted totals and the accounts they touch, hands them to compute and
	// writes the result, all in one transaction serialized against other recomputes.
	// Accounts missing from the computed map are reset to zero. It returns the number written.
	RecomputeBalances(ctx context.Context, compute BalanceComputer, now time.Time) (int, error)
}

// BalanceComputer turns posted totals per account into signed balances.
type BalanceComputer func(totals map[string]domain.AccountTotals, accounts map[string]domain.Account) (map[string]decimal.Decimal, error)

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
