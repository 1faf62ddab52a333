package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
)

// idempotencyGuard detects business events that already produced an entry.
// It is the fast path only: the unique document number index settles concurrent attempts.
type idempotencyGuard struct {
	journalRepo portsrepo.JournalReader
}

// postingNumber is the reference-derived document number of the automatic entry for an event.
// A business number already carrying the series prefix is not prefixed twice: VB-0007 -> JE-VB-0007.
func postingNumber(eventType domain.EventType, businessNumber string) string {
	prefix := eventType.DocumentPrefix()
	series := strings.TrimPrefix(prefix, domain.SeriesJournalEntry.Prefix+"-")
	return prefix + strings.TrimPrefix(businessNumber, series)
}

// sameEvent reports whether entry was posted for the given business record.
func sameEvent(entry *domain.JournalEntry, eventType domain.EventType, eventID string) bool {
	return entry.Reference != nil && entry.Reference.Type == string(eventType) && entry.Reference.ID == eventID
}

// numberCollision is returned when a derived document number already belongs to another record.
func numberCollision(entry *domain.JournalEntry, eventType domain.EventType, eventID string) error {
	owner := "no reference"
	if entry.Reference != nil {
		owner = entry.Reference.Type + " " + entry.Reference.ID
	}
	return fmt.Errorf("%w: document number %s for %s %s is already used by %s",
		apperrors.ErrDuplicate, entry.DocumentNumber, eventType, eventID, owner)
}

// AlreadyPosted reports whether the event's entry exists and returns it when it does.
// An entry under the same number that belongs to a different record is a collision, not a repeat.
func (g *idempotencyGuard) AlreadyPosted(ctx context.Context, eventType domain.EventType, eventID, businessNumber string) (bool, *domain.JournalEntry, error) {
	entry, err := g.journalRepo.FindEntryByDocumentNumber(ctx, postingNumber(eventType, businessNumber))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	if !sameEvent(entry, eventType, eventID) {
		return false, nil, numberCollision(entry, eventType, eventID)
	}
	return true, entry, nil
}
