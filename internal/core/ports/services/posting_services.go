package services

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// PostingSvcFacade is the automatic posting path used by business-event producers.
type PostingSvcFacade interface {
	// PostForEvent maps the event to a balanced entry and stores it as POSTED.
	// Missing or inactive role accounts yield a SKIPPED result, not an error.
	PostForEvent(ctx context.Context, eventType domain.EventType, eventID string, actorID string) (*domain.PostingResult, error)

	// Trigger runs PostForEvent and only logs failures, so the producer's own write is never failed by it.
	Trigger(ctx context.Context, eventType domain.EventType, eventID string, actorID string)
}

// OutboxSvc records posting intents and drains them.
type OutboxSvc interface {
	// Enqueue records an intent to post the event later.
	Enqueue(ctx context.Context, eventType domain.EventType, eventID string, actorID string) (*domain.PostingIntent, error)

	// ProcessDue handles one batch of due intents and returns how many were handled.
	ProcessDue(ctx context.Context) (int, error)

	// Run polls until ctx is cancelled.
	Run(ctx context.Context) error
}
