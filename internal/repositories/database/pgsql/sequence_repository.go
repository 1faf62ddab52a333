package pgsql

import (
	"context"
	"fmt"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
)

// seriesHome maps a sequential series to the table and column its numbers are stored in.
var seriesHome = map[string]struct{ table, column string }{
	domain.SeriesJournalEntry.Prefix:    {"journal_entries", "document_number"},
	domain.SeriesVendorBill.Prefix:      {"vendor_bills", "bill_number"},
	domain.SeriesStockAdjustment.Prefix: {"stock_adjustments", "adjustment_number"},
	domain.SeriesFuelLog.Prefix:         {"fuel_logs", "log_number"},
}

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool DBPool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue atomically increments the series counter.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, series domain.Series) (int64, error) {
	return r.NextValueWith(ctx, r.Pool, series)
}

// NextValueWith increments the counter on q. The row lock taken by the upsert is held until q's
// transaction ends, which serializes concurrent callers of the same series.
func (r *PgxSequenceRepository) NextValueWith(ctx context.Context, q portsrepo.Querier, series domain.Series) (int64, error) {
	query := `
		INSERT INTO document_sequences (series, last_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (series) DO UPDATE
		SET last_value = document_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value;
	`
	var value int64
	if err := q.QueryRow(ctx, query, series.Prefix, series.FirstValue).Scan(&value); err != nil {
		return 0, fmt.Errorf("failed to allocate next value for series %s: %w", series.Prefix, err)
	}
	return value, nil
}

// SeedValue raises the counter to at least lastValue, never lowering it.
func (r *PgxSequenceRepository) SeedValue(ctx context.Context, series domain.Series, lastValue int64) error {
	query := `
		INSERT INTO document_sequences (series, last_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (series) DO UPDATE
		SET last_value = GREATEST(document_sequences.last_value, EXCLUDED.last_value), updated_at = NOW();
	`
	if _, err := r.Pool.Exec(ctx, query, series.Prefix, lastValue); err != nil {
		return fmt.Errorf("failed to seed series %s: %w", series.Prefix, err)
	}
	return nil
}

// ExistingNumbers lists numbers in the series' home table that carry the series prefix.
func (r *PgxSequenceRepository) ExistingNumbers(ctx context.Context, series domain.Series) ([]string, error) {
	home, ok := seriesHome[series.Prefix]
	if !ok {
		return nil, nil
	}

	// Table and column come from the static map above, never from input.
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s LIKE $1;`, home.column, home.table, home.column)
	rows, err := r.Pool.Query(ctx, query, series.Prefix+"-%")
	if err != nil {
		return nil, fmt.Errorf("failed to list numbers for series %s: %w", series.Prefix, err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan number for series %s: %w", series.Prefix, err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
