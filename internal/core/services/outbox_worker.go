package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/config"
	"github.com/KANAL1234/business-erp-system-sub002/internal/platform/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const (
	outboxActor        = "system:outbox"
	inlineRetries      = 2
	inlineRetryInitial = 200 * time.Millisecond
)

// outboxWorker drains posting intents recorded by producers.
type outboxWorker struct {
	BaseService
	outboxRepo portsrepo.OutboxRepository
	posting    portssvc.PostingSvcFacade
	cfg        config.OutboxConfig
	metrics    *metrics.Ledger
}

// NewOutboxWorker creates the outbox service. m may be nil.
func NewOutboxWorker(outboxRepo portsrepo.OutboxRepository, posting portssvc.PostingSvcFacade, cfg config.OutboxConfig, m *metrics.Ledger) portssvc.OutboxSvc {
	return &outboxWorker{
		outboxRepo: outboxRepo,
		posting:    posting,
		cfg:        cfg,
		metrics:    m,
	}
}

var _ portssvc.OutboxSvc = (*outboxWorker)(nil)

func (w *outboxWorker) Enqueue(ctx context.Context, eventType domain.EventType, eventID string, actorID string) (*domain.PostingIntent, error) {
	if !eventType.IsValid() {
		return nil, fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, eventType)
	}
	if strings.TrimSpace(eventID) == "" {
		return nil, fmt.Errorf("%w: event id is required", apperrors.ErrValidation)
	}
	if actorID == "" {
		actorID = outboxActor
	}

	now := w.Now()
	intent := domain.PostingIntent{
		IntentID:      uuid.NewString(),
		EventType:     eventType,
		EventID:       eventID,
		ActorID:       actorID,
		Status:        domain.IntentPending,
		NextAttemptAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := w.outboxRepo.Enqueue(ctx, intent); err != nil {
		w.LogError(ctx, err, "Failed to enqueue posting intent",
			slog.String("event_type", string(eventType)),
			slog.String("event_id", eventID))
		return nil, err
	}
	return &intent, nil
}

// isPermanent reports errors that retrying cannot fix.
func isPermanent(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate)
}

// retryDelay is RetryBase doubled per prior attempt, capped at RetryMax.
func (w *outboxWorker) retryDelay(attempts int) time.Duration {
	delay := w.cfg.RetryBase
	for i := 1; i < attempts; i++ {
		delay *= 2
		if w.cfg.RetryMax > 0 && delay >= w.cfg.RetryMax {
			return w.cfg.RetryMax
		}
	}
	return delay
}

// attempt posts one intent, retrying transient errors a few times in place.
func (w *outboxWorker) attempt(ctx context.Context, intent domain.PostingIntent) error {
	operation := func() error {
		result, err := w.posting.PostForEvent(ctx, intent.EventType, intent.EventID, intent.ActorID)
		if err != nil {
			if isPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		if result.Outcome == domain.OutcomeSkipped && result.Retryable {
			// Configuration will not fix itself within the inline window.
			return backoff.Permanent(fmt.Errorf("%w: %s", apperrors.ErrConfiguration, result.Reason))
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = inlineRetryInitial
	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, inlineRetries), ctx))
}

func (w *outboxWorker) handle(ctx context.Context, intent domain.PostingIntent) {
	logger := w.GetLogger(ctx).With(
		slog.String("intent_id", intent.IntentID),
		slog.String("event_type", string(intent.EventType)),
		slog.String("event_id", intent.EventID))

	err := w.attempt(ctx, intent)
	now := w.Now()
	if err == nil {
		if markErr := w.outboxRepo.MarkDone(ctx, intent.IntentID, now); markErr != nil {
			logger.Error("Failed to mark posting intent done", slog.String("error", markErr.Error()))
			return
		}
		w.metrics.OutboxIntent("done")
		return
	}

	attempts := intent.Attempts + 1
	dead := isPermanent(err) || attempts >= w.cfg.MaxAttempts
	next := now.Add(w.retryDelay(attempts))
	if markErr := w.outboxRepo.MarkFailed(ctx, intent.IntentID, attempts, err.Error(), next, dead, now); markErr != nil {
		logger.Error("Failed to record posting intent failure", slog.String("error", markErr.Error()))
		return
	}

	if dead {
		w.metrics.OutboxIntent("dead")
		logger.Error("Posting intent is dead", slog.String("error", err.Error()), slog.Int("attempts", attempts))
		return
	}
	w.metrics.OutboxIntent("retry")
	logger.Warn("Posting intent rescheduled",
		slog.String("error", err.Error()),
		slog.Int("attempts", attempts),
		slog.Time("next_attempt_at", next))
}

func (w *outboxWorker) ProcessDue(ctx context.Context) (int, error) {
	intents, err := w.outboxRepo.LeaseDue(ctx, w.Now(), w.cfg.BatchSize, w.cfg.LeaseFor)
	if err != nil {
		return 0, err
	}
	for _, intent := range intents {
		if ctx.Err() != nil {
			break
		}
		w.handle(ctx, intent)
	}
	return len(intents), nil
}

// Run polls for due intents until ctx is cancelled. A full batch is followed by another poll at once.
func (w *outboxWorker) Run(ctx context.Context) error {
	w.LogInfo(ctx, "Outbox worker started",
		slog.Duration("poll_interval", w.cfg.PollInterval),
		slog.Int("batch_size", w.cfg.BatchSize))

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		n, err := w.ProcessDue(ctx)
		if err != nil && ctx.Err() == nil {
			w.LogError(ctx, err, "Outbox poll failed")
		}
		if n >= w.cfg.BatchSize && err == nil {
			continue
		}

		select {
		case <-ctx.Done():
			w.LogInfo(ctx, "Outbox worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}
