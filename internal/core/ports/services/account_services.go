package services

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts by their IDs.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, actorID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// AccountDirectorySvc resolves the typed account roles the posting rules depend on.
type AccountDirectorySvc interface {
	// ResolveRoles checks that every role maps to an existing account. Called once at startup.
	ResolveRoles(ctx context.Context) error

	// Account returns the active account currently bound to role, or apperrors.ErrConfiguration.
	Account(ctx context.Context, role domain.AccountRole) (*domain.Account, error)

	// Code returns the account code configured for role.
	Code(role domain.AccountRole) string
}
