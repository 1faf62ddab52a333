package repositories

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// SequenceRepository owns the per-series counter rows.
type SequenceRepository interface {
	// NextValue atomically increments the series counter and returns the new value.
	// A series without a counter row starts at its FirstValue.
	NextValue(ctx context.Context, series domain.Series) (int64, error)

	// NextValueWith is NextValue on a caller-supplied querier, typically an open transaction.
	NextValueWith(ctx context.Context, q Querier, series domain.Series) (int64, error)

	// SeedValue raises the counter to at least lastValue.
	SeedValue(ctx context.Context, series domain.Series, lastValue int64) error

	// ExistingNumbers lists document numbers already issued in the series' home table.
	ExistingNumbers(ctx context.Context, series domain.Series) ([]string, error)
}
