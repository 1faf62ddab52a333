package services

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// SequenceSvc issues human-readable document numbers.
type SequenceSvc interface {
	// Next issues the next number of the series with the given prefix, e.g. "JE" -> "JE-0042".
	Next(ctx context.Context, prefix string) (string, error)

	// SeedFromExisting raises sequential counters past numbers already present in the store.
	SeedFromExisting(ctx context.Context) error
}

// BalanceSvc derives account balances and the trial balance from posted lines.
type BalanceSvc interface {
	// Recompute rewrites every account balance and returns the number of accounts touched.
	Recompute(ctx context.Context) (int, error)

	// TrialBalance reports per-account posted totals.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)
}
