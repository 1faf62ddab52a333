package dto

import (
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// PostingResultResponse is returned by the synchronous automatic posting endpoint.
type PostingResultResponse struct {
	Outcome domain.PostingOutcome `json:"outcome"`
	Reason  string                `json:"reason,omitempty"`
	Entry   *JournalEntryResponse `json:"entry,omitempty"`
}

// ToPostingResultResponse converts a domain.PostingResult to its DTO.
func ToPostingResultResponse(r *domain.PostingResult) PostingResultResponse {
	res := PostingResultResponse{Outcome: r.Outcome, Reason: r.Reason}
	if r.Entry != nil {
		entry := ToJournalEntryResponse(r.Entry)
		res.Entry = &entry
	}
	return res
}

// EnqueuePostingIntentRequest asks for an event to be posted by the outbox worker.
type EnqueuePostingIntentRequest struct {
	EventType domain.EventType `json:"eventType" binding:"required,oneof=POS_SALE VENDOR_BILL STOCK_ADJUSTMENT FUEL_LOG"`
	EventID   string           `json:"eventID" binding:"required"`
}

// PostingIntentResponse defines the data returned for an outbox intent.
type PostingIntentResponse struct {
	IntentID      string              `json:"intentID"`
	EventType     domain.EventType    `json:"eventType"`
	EventID       string              `json:"eventID"`
	Status        domain.IntentStatus `json:"status"`
	Attempts      int                 `json:"attempts"`
	NextAttemptAt time.Time           `json:"nextAttemptAt"`
}

// ToPostingIntentResponse converts a domain.PostingIntent to its DTO.
func ToPostingIntentResponse(i *domain.PostingIntent) PostingIntentResponse {
	return PostingIntentResponse{
		IntentID:      i.IntentID,
		EventType:     i.EventType,
		EventID:       i.EventID,
		Status:        i.Status,
		Attempts:      i.Attempts,
		NextAttemptAt: i.NextAttemptAt,
	}
}

// DocumentNumberResponse carries a freshly issued document number.
type DocumentNumberResponse struct {
	Series         string `json:"series"`
	DocumentNumber string `json:"documentNumber"`
}

// RecomputeBalancesResponse reports how many account balances were rewritten.
type RecomputeBalancesResponse struct {
	AccountsUpdated int `json:"accountsUpdated"`
}
