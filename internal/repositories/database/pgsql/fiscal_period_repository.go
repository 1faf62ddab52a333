package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxFiscalPeriodRepository struct {
	BaseRepository
}

func newPgxFiscalPeriodRepository(pool DBPool) *PgxFiscalPeriodRepository {
	return &PgxFiscalPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalPeriodRepository = (*PgxFiscalPeriodRepository)(nil)

// FindPeriodForDate returns the period whose window contains date.
func (r *PgxFiscalPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error) {
	query := `
		SELECT period_id, code, start_date, end_date, status
		FROM fiscal_periods
		WHERE $1::date BETWEEN start_date AND end_date
		ORDER BY start_date DESC
		LIMIT 1;
	`
	var (
		p      domain.FiscalPeriod
		status string
	)
	err := r.Pool.QueryRow(ctx, query, date).Scan(&p.PeriodID, &p.Code, &p.StartDate, &p.EndDate, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fiscal period for %s: %w", date.Format(time.DateOnly), err)
	}
	p.Status = domain.PeriodStatus(status)
	return &p, nil
}
