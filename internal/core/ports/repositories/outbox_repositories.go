package repositories

import (
	"context"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// OutboxRepository stores posting intents and hands them out to workers.
type OutboxRepository interface {
	// Enqueue records an intent; an intent for the same event is not duplicated.
	Enqueue(ctx context.Context, intent domain.PostingIntent) error

	// EnqueueWith is Enqueue inside the producer's own transaction.
	EnqueueWith(ctx context.Context, q Querier, intent domain.PostingIntent) error

	// LeaseDue returns up to limit PENDING intents due at now and pushes their next attempt
	// past leaseFor so concurrent workers do not pick them up.
	LeaseDue(ctx context.Context, now time.Time, limit int, leaseFor time.Duration) ([]domain.PostingIntent, error)

	// MarkDone records a successful posting.
	MarkDone(ctx context.Context, intentID string, now time.Time) error

	// MarkFailed records a failed attempt. dead moves the intent to DEAD.
	MarkFailed(ctx context.Context, intentID string, attempts int, lastErr string, nextAttemptAt time.Time, dead bool, now time.Time) error
}
