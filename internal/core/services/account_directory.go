package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"gopkg.in/yaml.v3"
)

// roleFile is the layout of the account role override file:
//
//	roles:
//	  cash: "1010"
//	  fuel_expense: "5250"
type roleFile struct {
	Roles map[string]string `yaml:"roles"`
}

// LoadRoleCodes returns the default role → code mapping with the overrides from path applied.
// An empty path yields the defaults. Unknown role names are rejected.
func LoadRoleCodes(path string) (map[domain.AccountRole]string, error) {
	codes := make(map[domain.AccountRole]string, len(domain.DefaultRoleCodes))
	for role, code := range domain.DefaultRoleCodes {
		codes[role] = code
	}
	if path == "" {
		return codes, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading account roles file: %w", err)
	}
	return applyRoleOverrides(codes, raw)
}

func applyRoleOverrides(codes map[domain.AccountRole]string, raw []byte) (map[domain.AccountRole]string, error) {
	var file roleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: parsing account roles file: %v", apperrors.ErrConfiguration, err)
	}

	for name, code := range file.Roles {
		role := domain.AccountRole(name)
		if _, known := domain.DefaultRoleCodes[role]; !known {
			return nil, fmt.Errorf("%w: unknown account role %q", apperrors.ErrConfiguration, name)
		}
		if code == "" {
			return nil, fmt.Errorf("%w: empty account code for role %q", apperrors.ErrConfiguration, name)
		}
		codes[role] = code
	}
	return codes, nil
}

type accountDirectory struct {
	BaseService
	accountRepo portsrepo.AccountReader
	codes       map[domain.AccountRole]string
}

// NewAccountDirectory creates the role resolver over the given role → code mapping.
func NewAccountDirectory(accountRepo portsrepo.AccountReader, codes map[domain.AccountRole]string) portssvc.AccountDirectorySvc {
	return &accountDirectory{
		accountRepo: accountRepo,
		codes:       codes,
	}
}

var _ portssvc.AccountDirectorySvc = (*accountDirectory)(nil)

// ResolveRoles reports every role whose account is missing in one joined error.
// Inactive accounts are only warned about; postings needing them are skipped later.
func (d *accountDirectory) ResolveRoles(ctx context.Context) error {
	var errs []error
	for _, role := range domain.AllAccountRoles {
		code := d.Code(role)
		account, err := d.accountRepo.FindAccountByCode(ctx, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				errs = append(errs, fmt.Errorf("%w: role %s: no account with code %s", apperrors.ErrConfiguration, role, code))
				continue
			}
			return fmt.Errorf("resolving role %s: %w", role, err)
		}
		if !account.IsActive {
			d.LogWarn(ctx, "Account role mapped to an inactive account",
				slog.String("role", string(role)),
				slog.String("code", code))
		}
	}
	return errors.Join(errs...)
}

func (d *accountDirectory) Account(ctx context.Context, role domain.AccountRole) (*domain.Account, error) {
	code := d.Code(role)
	if code == "" {
		return nil, fmt.Errorf("%w: no account code configured for role %s", apperrors.ErrConfiguration, role)
	}

	account, err := d.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s for role %s does not exist", apperrors.ErrConfiguration, code, role)
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s for role %s is inactive", apperrors.ErrConfiguration, code, role)
	}
	return account, nil
}

func (d *accountDirectory) Code(role domain.AccountRole) string {
	return d.codes[role]
}
