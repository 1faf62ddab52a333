package mapping

import (
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/KANAL1234/business-erp-system-sub002/internal/models"
)

// ToModelPostingIntent converts a domain PostingIntent to a model PostingIntent
func ToModelPostingIntent(d domain.PostingIntent) models.PostingIntent {
	return models.PostingIntent{
		IntentID:      d.IntentID,
		EventType:     string(d.EventType),
		EventID:       d.EventID,
		ActorID:       d.ActorID,
		Status:        string(d.Status),
		Attempts:      d.Attempts,
		LastError:     d.LastError,
		NextAttemptAt: d.NextAttemptAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainPostingIntent converts a model PostingIntent to a domain PostingIntent
func ToDomainPostingIntent(m models.PostingIntent) domain.PostingIntent {
	return domain.PostingIntent{
		IntentID:      m.IntentID,
		EventType:     domain.EventType(m.EventType),
		EventID:       m.EventID,
		ActorID:       m.ActorID,
		Status:        domain.IntentStatus(m.Status),
		Attempts:      m.Attempts,
		LastError:     m.LastError,
		NextAttemptAt: m.NextAttemptAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
