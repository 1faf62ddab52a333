package repositories

import (
	"context"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// FiscalPeriodRepository resolves accounting periods.
type FiscalPeriodRepository interface {
	// FindPeriodForDate returns the period containing date, or apperrors.ErrNotFound.
	FindPeriodForDate(ctx context.Context, date time.Time) (*domain.FiscalPeriod, error)
}
