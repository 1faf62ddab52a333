package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/docnumber"
)

type sequenceService struct {
	BaseService
	sequenceRepo portsrepo.SequenceRepository
}

// NewSequenceService creates the document number generator.
func NewSequenceService(repo portsrepo.SequenceRepository) portssvc.SequenceSvc {
	return &sequenceService{sequenceRepo: repo}
}

var _ portssvc.SequenceSvc = (*sequenceService)(nil)

func (s *sequenceService) Next(ctx context.Context, prefix string) (string, error) {
	series, ok := domain.KnownSeries[strings.ToUpper(prefix)]
	if !ok {
		return "", fmt.Errorf("%w: unknown document series %q", apperrors.ErrValidation, prefix)
	}

	if series.Strategy == domain.StrategyCollisionResistant {
		number, err := docnumber.Unique(series.Prefix)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate document number", slog.String("series", series.Prefix))
			return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
		}
		return number, nil
	}

	value, err := s.sequenceRepo.NextValue(ctx, series)
	if err != nil {
		s.LogError(ctx, err, "Failed to allocate document number", slog.String("series", series.Prefix))
		return "", err
	}
	return docnumber.Format(series.Prefix, value, series.Width), nil
}

// SeedFromExisting lifts each sequential counter to the highest number already stored, so
// numbers issued before the counter existed are never handed out again.
func (s *sequenceService) SeedFromExisting(ctx context.Context) error {
	for _, series := range domain.KnownSeries {
		if series.Strategy != domain.StrategySequential {
			continue
		}

		numbers, err := s.sequenceRepo.ExistingNumbers(ctx, series)
		if err != nil {
			return err
		}
		next := docnumber.NextAfter(series.Prefix, numbers, series.FirstValue)
		if next == series.FirstValue {
			continue
		}

		if err := s.sequenceRepo.SeedValue(ctx, series, next-1); err != nil {
			return err
		}
		s.LogInfo(ctx, "Seeded document series",
			slog.String("series", series.Prefix),
			slog.Int64("last_value", next-1))
	}
	return nil
}
