package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultAccountPageSize = 50
	maxAccountPageSize     = 500
)

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		AccountType: req.AccountType,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.NewAuditFields(actorID, s.Now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	ids := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts", slog.Int("count", len(ids)))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	limit = pagination.ClampLimit(limit, defaultAccountPageSize, maxAccountPageSize)
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, limit, offset)
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actorID, s.Now()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account " + accountID)
		}
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("actor_id", actorID))
	return nil
}
