package services_test

import (
	"context"
	"testing"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateAccount(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.Name == "Cash" && a.IsActive && a.Balance.IsZero() && a.CreatedBy == "user-1"
	})).Return(nil).Once()
	svc := services.NewAccountService(repo)

	account, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code:        " 1000 ",
		Name:        "Cash",
		AccountType: domain.Asset,
	}, "user-1")

	require.NoError(t, err)
	assert.NotEmpty(t, account.AccountID)
	repo.AssertExpectations(t)
}

func TestAccountService_CreateAccountValidation(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(repo)

	_, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.CreateAccount(context.Background(), dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "BOGUS"}, "user-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	repo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}

func TestAccountService_CreateAccountDuplicateCode(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("SaveAccount", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	svc := services.NewAccountService(repo)

	_, err := svc.CreateAccount(context.Background(), dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}, "user-1")

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestAccountService_GetAccountByIDNotFound(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()
	svc := services.NewAccountService(repo)

	_, err := svc.GetAccountByID(context.Background(), "missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountService_ListAccountsClampsLimit(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("ListAccounts", mock.Anything, 50, 0).Return([]domain.Account{}, nil).Once()
	repo.On("ListAccounts", mock.Anything, 500, 10).Return([]domain.Account{}, nil).Once()
	svc := services.NewAccountService(repo)

	_, err := svc.ListAccounts(context.Background(), 0, -3)
	require.NoError(t, err)
	_, err = svc.ListAccounts(context.Background(), 10000, 10)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestAccountService_GetAccountsByIDsDeduplicates(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("FindAccountsByIDs", mock.Anything, []string{"a", "b"}).Return(map[string]domain.Account{}, nil).Once()
	svc := services.NewAccountService(repo)

	_, err := svc.GetAccountsByIDs(context.Background(), []string{"a", "b", "a"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAccountService_DeactivateAccount(t *testing.T) {
	repo := new(MockAccountRepository)
	repo.On("DeactivateAccount", mock.Anything, "acc-1", "user-1", mock.Anything).Return(nil).Once()
	repo.On("DeactivateAccount", mock.Anything, "missing", "user-1", mock.Anything).Return(apperrors.ErrNotFound).Once()
	svc := services.NewAccountService(repo)

	require.NoError(t, svc.DeactivateAccount(context.Background(), "acc-1", "user-1"))
	assert.ErrorIs(t, svc.DeactivateAccount(context.Background(), "missing", "user-1"), apperrors.ErrNotFound)
}
