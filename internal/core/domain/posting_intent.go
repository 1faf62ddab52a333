package domain

import "time"

// IntentStatus tracks outbox processing of a posting intent.
type IntentStatus string

const (
	IntentPending IntentStatus = "PENDING"
	IntentDone    IntentStatus = "DONE"
	IntentDead    IntentStatus = "DEAD"
)

// PostingIntent is an outbox row recorded by a business write, processed later by the outbox worker.
type PostingIntent struct {
	IntentID      string       `json:"intentID"`
	EventType     EventType    `json:"eventType"`
	EventID       string       `json:"eventID"`
	ActorID       string       `json:"actorID"`
	Status        IntentStatus `json:"status"`
	Attempts      int          `json:"attempts"`
	LastError     *string      `json:"lastError,omitempty"`
	NextAttemptAt time.Time    `json:"nextAttemptAt"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
