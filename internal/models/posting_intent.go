package models

import "time"

// PostingIntent is a row of the posting_intents outbox table.
type PostingIntent struct {
	IntentID      string    `db:"intent_id"`
	EventType     string    `db:"event_type"`
	EventID       string    `db:"event_id"`
	ActorID       string    `db:"actor_id"`
	Status        string    `db:"status"`
	Attempts      int       `db:"attempts"`
	LastError     *string   `db:"last_error"`
	NextAttemptAt time.Time `db:"next_attempt_at"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
