package repositories

import (
	"context"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry and its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByDocumentNumber retrieves an entry and its lines by its unique document number.
	FindEntryByDocumentNumber(ctx context.Context, documentNumber string) (*domain.JournalEntry, error)

	// ListEntries returns a page of entry headers, newest first, and a token for the next page.
	ListEntries(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// SumPostedLinesByAccount totals debit and credit of POSTED entries per account ID.
	SumPostedLinesByAccount(ctx context.Context) (map[string]domain.AccountTotals, error)
}

// JournalWriter defines write operations for journal data.
// Every status-dependent write re-checks the status in its WHERE clause and returns
// apperrors.ErrState when the row is no longer in the expected state.
type JournalWriter interface {
	// SaveEntry inserts the header and lines in one transaction. When DocumentNumber is empty the
	// next JE number is allocated inside that transaction and written back to entry.
	// A document number collision yields apperrors.ErrDuplicate.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error

	// ReplaceDraftLines swaps the lines and totals of a DRAFT entry.
	ReplaceDraftLines(ctx context.Context, entryID string, lines []domain.JournalLine, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error

	// MarkPosted flips a DRAFT entry to POSTED and stamps the poster.
	MarkPosted(ctx context.Context, entryID string, fiscalPeriodID *string, postedBy string, postedAt time.Time) error

	// MarkCancelled flips a DRAFT entry to CANCELLED.
	MarkCancelled(ctx context.Context, entryID string, userID string, now time.Time) error

	// DeleteDraft removes a DRAFT entry and its lines.
	DeleteDraft(ctx context.Context, entryID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
