package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
)

// periodForPosting returns the ID of the fiscal period an entry dated date posts into.
// Dates outside every defined period post with no period; a CLOSED period rejects the post.
func periodForPosting(ctx context.Context, repo portsrepo.FiscalPeriodRepository, date time.Time) (*string, error) {
	if repo == nil {
		return nil, nil
	}

	period, err := repo.FindPeriodForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !period.IsOpen() {
		return nil, fmt.Errorf("%w: fiscal period %s is closed", apperrors.ErrValidation, period.Code)
	}
	return &period.PeriodID, nil
}
