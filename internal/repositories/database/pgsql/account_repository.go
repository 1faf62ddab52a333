package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	"github.com/KANAL1234/business-erp-system-sub002/internal/models"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `account_id, code, name, account_type, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool DBPool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.IsActive,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.IsActive,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return fmt.Errorf("%w: account with code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.Code, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if !validUUID(accountID) {
		return nil, apperrors.ErrNotFound
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByCode retrieves an account by its chart-of-accounts code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// IDs that are not UUIDs cannot exist and are left out of the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return findAccountsByIDs(ctx, r.Pool, accountIDs)
}

func findAccountsByIDs(ctx context.Context, q portsrepo.Querier, accountIDs []string) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if validUUID(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(ids))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	if !validUUID(accountID) {
		return apperrors.ErrNotFound
	}
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// balanceLockKey is the advisory lock that serializes balance recomputes across sessions.
const balanceLockKey int64 = 0x4c454447

// RecomputeBalances reads posted totals, turns them into balances with compute and writes them,
// all in one transaction holding balanceLockKey. Accounts without posted lines are reset to zero.
// A recompute that starts later therefore always reads totals at least as new as the last write.
func (r *PgxAccountRepository) RecomputeBalances(ctx context.Context, compute portsrepo.BalanceComputer, now time.Time) (int, error) {
	var written int
	err := r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, balanceLockKey); err != nil {
			return fmt.Errorf("failed to lock account balances: %w", err)
		}

		totals, err := sumPostedLines(ctx, tx)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(totals))
		for id := range totals {
			ids = append(ids, id)
		}
		accounts, err := findAccountsByIDs(ctx, tx, ids)
		if err != nil {
			return err
		}

		balances, err := compute(totals, accounts)
		if err != nil {
			return err
		}

		ids = ids[:0]
		for id := range balances {
			ids = append(ids, id)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE accounts SET balance = 0, last_updated_at = $2
			WHERE balance <> 0 AND NOT (account_id = ANY($1));`, ids, now); err != nil {
			return fmt.Errorf("failed to reset untouched balances: %w", err)
		}
		for id, balance := range balances {
			if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = $2, last_updated_at = $3 WHERE account_id = $1;`, id, balance, now); err != nil {
				return fmt.Errorf("failed to update balance of account %s: %w", id, err)
			}
		}
		written = len(balances)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
