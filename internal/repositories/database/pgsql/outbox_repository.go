package pgsql

import (
	"context"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	"github.com/KANAL1234/business-erp-system-sub002/internal/models"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/mapping"
)

const intentColumns = `intent_id, event_type, event_id, actor_id, status, attempts, last_error, next_attempt_at, created_at, updated_at`

type PgxOutboxRepository struct {
	BaseRepository
}

func newPgxOutboxRepository(pool DBPool) *PgxOutboxRepository {
	return &PgxOutboxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OutboxRepository = (*PgxOutboxRepository)(nil)

// Enqueue records a posting intent.
func (r *PgxOutboxRepository) Enqueue(ctx context.Context, intent domain.PostingIntent) error {
	return r.EnqueueWith(ctx, r.Pool, intent)
}

// EnqueueWith records a posting intent on q, so a business write and its intent commit together.
func (r *PgxOutboxRepository) EnqueueWith(ctx context.Context, q portsrepo.Querier, intent domain.PostingIntent) error {
	return EnqueuePostingIntent(ctx, q, intent)
}

// EnqueuePostingIntent inserts an intent on any querier. An intent already recorded for the same
// event is left alone unless it is DEAD, in which case it is revived with a fresh attempt budget.
func EnqueuePostingIntent(ctx context.Context, q portsrepo.Querier, intent domain.PostingIntent) error {
	m := mapping.ToModelPostingIntent(intent)
	query := `
		INSERT INTO posting_intents (` + intentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (event_type, event_id) DO UPDATE
		SET status = 'PENDING', attempts = 0, last_error = NULL,
			next_attempt_at = EXCLUDED.next_attempt_at, updated_at = EXCLUDED.updated_at
		WHERE posting_intents.status = 'DEAD';
	`
	_, err := q.Exec(ctx, query,
		m.IntentID,
		m.EventType,
		m.EventID,
		m.ActorID,
		m.Status,
		m.Attempts,
		m.LastError,
		m.NextAttemptAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to enqueue posting intent", err)
	}
	return nil
}

// LeaseDue claims due PENDING intents. SKIP LOCKED keeps concurrent workers off each other's rows,
// and the pushed-forward next_attempt_at keeps the lease after the statement commits.
func (r *PgxOutboxRepository) LeaseDue(ctx context.Context, now time.Time, limit int, leaseFor time.Duration) ([]domain.PostingIntent, error) {
	query := `
		UPDATE posting_intents
		SET next_attempt_at = $2, updated_at = $1
		WHERE intent_id IN (
			SELECT intent_id FROM posting_intents
			WHERE status = 'PENDING' AND next_attempt_at <= $1
			ORDER BY next_attempt_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + intentColumns + `;
	`
	rows, err := r.Pool.Query(ctx, query, now, now.Add(leaseFor), limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lease posting intents", err)
	}
	defer rows.Close()

	var intents []domain.PostingIntent
	for rows.Next() {
		var m models.PostingIntent
		if err := rows.Scan(
			&m.IntentID,
			&m.EventType,
			&m.EventID,
			&m.ActorID,
			&m.Status,
			&m.Attempts,
			&m.LastError,
			&m.NextAttemptAt,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting intent", err)
		}
		intents = append(intents, mapping.ToDomainPostingIntent(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting intents", err)
	}
	return intents, nil
}

// MarkDone records a successful posting.
func (r *PgxOutboxRepository) MarkDone(ctx context.Context, intentID string, now time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE posting_intents
		SET status = 'DONE', attempts = attempts + 1, last_error = NULL, updated_at = $2
		WHERE intent_id = $1;`, intentID, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark posting intent done", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkFailed records a failed attempt and schedules the next one, or moves the intent to DEAD.
func (r *PgxOutboxRepository) MarkFailed(ctx context.Context, intentID string, attempts int, lastErr string, nextAttemptAt time.Time, dead bool, now time.Time) error {
	status := domain.IntentPending
	if dead {
		status = domain.IntentDead
	}
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE posting_intents
		SET status = $2, attempts = $3, last_error = $4, next_attempt_at = $5, updated_at = $6
		WHERE intent_id = $1;`,
		intentID, string(status), attempts, lastErr, nextAttemptAt, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark posting intent failed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
