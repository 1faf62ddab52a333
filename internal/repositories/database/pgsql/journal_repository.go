package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	"github.com/KANAL1234/business-erp-system-sub002/internal/models"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/docnumber"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/mapping"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, document_number, entry_date, entry_type, narration,
	reference_type, reference_id, reference_number, fiscal_period_id,
	total_debit, total_credit, status, posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

const insertLineQuery = `
	INSERT INTO journal_lines (line_id, entry_id, account_id, line_number, debit, credit, description, cost_center, customer_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

type PgxJournalRepository struct {
	BaseRepository
	sequences *PgxSequenceRepository
}

func newPgxJournalRepository(pool DBPool, sequences *PgxSequenceRepository) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		sequences:      sequences,
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.DocumentNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.Narration,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.ReferenceNumber,
		&m.FiscalPeriodID,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.Status,
		&m.PostedBy,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertLines(ctx context.Context, q portsrepo.Querier, lines []domain.JournalLine) error {
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		_, err := q.Exec(ctx, insertLineQuery,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.LineNumber,
			m.Debit,
			m.Credit,
			m.Description,
			m.CostCenter,
			m.CustomerID,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert journal line", err)
		}
	}
	return nil
}

// SaveEntry persists a journal entry and its lines in one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if entry.DocumentNumber == "" {
		series := domain.SeriesJournalEntry
		value, err := r.sequences.NextValueWith(ctx, tx, series)
		if err != nil {
			return apperrors.NewAppError(500, "failed to allocate journal number", err)
		}
		entry.DocumentNumber = docnumber.Format(series.Prefix, value, series.Width)
	}

	m := mapping.ToModelJournalEntry(*entry)
	query := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
	_, err = tx.Exec(ctx, query,
		m.EntryID,
		m.DocumentNumber,
		m.EntryDate,
		m.EntryType,
		m.Narration,
		m.ReferenceType,
		m.ReferenceID,
		m.ReferenceNumber,
		m.FiscalPeriodID,
		m.TotalDebit,
		m.TotalCredit,
		m.Status,
		m.PostedBy,
		m.PostedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, m.DocumentNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry", err)
	}

	if err := insertLines(ctx, tx, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, where string, arg any) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + where + ` = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry", err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := r.findLines(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, line_number, debit, credit, description, cost_center, customer_id
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	var lines []domain.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.LineNumber,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CostCenter,
			&m.CustomerID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal lines", err)
	}
	return lines, nil
}

// FindEntryByID retrieves an entry and its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if !validUUID(entryID) {
		return nil, apperrors.ErrNotFound
	}
	return r.findEntry(ctx, "entry_id", entryID)
}

// FindEntryByDocumentNumber retrieves an entry and its lines by document number.
func (r *PgxJournalRepository) FindEntryByDocumentNumber(ctx context.Context, documentNumber string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, "document_number", documentNumber)
}

// ListEntries returns entry headers newest first using keyset pagination on (entry_date, created_at, entry_id).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE TRUE`
	var args []any

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.EntryType != nil {
		args = append(args, string(*filter.EntryType))
		query += " AND entry_type = $" + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		query += fmt.Sprintf(" AND (entry_date, created_at, entry_id) < ($%d, $%d, $%d)", len(args)-2, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0, limit+1)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entries", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		token = &t
	}
	return entries, token, nil
}

// SumPostedLinesByAccount totals the lines of posted entries per account.
func (r *PgxJournalRepository) SumPostedLinesByAccount(ctx context.Context) (map[string]domain.AccountTotals, error) {
	return sumPostedLines(ctx, r.Pool)
}

func sumPostedLines(ctx context.Context, q portsrepo.Querier) (map[string]domain.AccountTotals, error) {
	query := `
		SELECT jl.account_id, COALESCE(SUM(jl.debit), 0), COALESCE(SUM(jl.credit), 0)
		FROM journal_lines jl
		JOIN journal_entries je ON je.entry_id = jl.entry_id
		WHERE je.status = 'POSTED'
		GROUP BY jl.account_id;
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum posted lines", err)
	}
	defer rows.Close()

	totals := make(map[string]domain.AccountTotals)
	for rows.Next() {
		var (
			accountID     string
			debit, credit decimal.Decimal
		)
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals", err)
		}
		totals[accountID] = domain.AccountTotals{Debit: debit, Credit: credit}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account totals", err)
	}
	return totals, nil
}

// stateConflict resolves a guarded update that touched no row into NotFound or a state error.
func (r *PgxJournalRepository) stateConflict(ctx context.Context, q portsrepo.Querier, entryID, action string) error {
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to read journal entry status", err)
	}
	return fmt.Errorf("%w: cannot %s entry in status %s", apperrors.ErrState, action, status)
}

// ReplaceDraftLines swaps the lines of a DRAFT entry.
func (r *PgxJournalRepository) ReplaceDraftLines(ctx context.Context, entryID string, lines []domain.JournalLine, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	if !validUUID(entryID) {
		return apperrors.ErrNotFound
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET total_debit = $2, total_credit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = 'DRAFT';`,
		entryID, totalDebit, totalCredit, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal entry", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.stateConflict(ctx, tx, entryID, "edit")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines", err)
	}

	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// MarkPosted flips a DRAFT entry to POSTED.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entryID string, fiscalPeriodID *string, postedBy string, postedAt time.Time) error {
	if !validUUID(entryID) {
		return apperrors.ErrNotFound
	}
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'POSTED', fiscal_period_id = $2, posted_by = $3, posted_at = $4,
			last_updated_at = $4, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT';`,
		entryID, fiscalPeriodID, postedBy, postedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.stateConflict(ctx, r.Pool, entryID, "post")
	}
	return nil
}

// MarkCancelled flips a DRAFT entry to CANCELLED.
func (r *PgxJournalRepository) MarkCancelled(ctx context.Context, entryID string, userID string, now time.Time) error {
	if !validUUID(entryID) {
		return apperrors.ErrNotFound
	}
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'CANCELLED', last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT';`,
		entryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to cancel journal entry", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.stateConflict(ctx, r.Pool, entryID, "cancel")
	}
	return nil
}

// DeleteDraft removes a DRAFT entry together with its lines.
func (r *PgxJournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	if !validUUID(entryID) {
		return apperrors.ErrNotFound
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'DRAFT';`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.stateConflict(ctx, tx, entryID, "delete")
	}

	// The cascade has normally removed them already.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal lines", err)
	}

	return r.Commit(ctx, tx)
}
