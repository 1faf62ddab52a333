package services

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/KANAL1234/business-erp-system-sub002/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntry retrieves an entry with its lines.
	GetJournalEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entry headers.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the manual entry lifecycle: draft, edit, post, cancel, delete, reverse.
type JournalWriterSvc interface {
	// CreateJournalEntry validates and stores a new DRAFT entry. Unbalanced input persists nothing.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, actorID string) (*domain.JournalEntry, error)

	// UpdateJournalLines replaces the lines of a DRAFT entry.
	UpdateJournalLines(ctx context.Context, entryID string, req dto.UpdateJournalLinesRequest, actorID string) (*domain.JournalEntry, error)

	// PostJournalEntry moves a DRAFT entry to POSTED and recomputes balances.
	PostJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)

	// CancelJournalEntry moves a DRAFT entry to CANCELLED.
	CancelJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)

	// DeleteJournalEntry removes a DRAFT entry and its lines.
	DeleteJournalEntry(ctx context.Context, entryID string, actorID string) error

	// ReverseJournalEntry creates a POSTED REVERSAL entry for a POSTED entry.
	ReverseJournalEntry(ctx context.Context, entryID string, actorID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
