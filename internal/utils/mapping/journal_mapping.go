package mapping

import (
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/KANAL1234/business-erp-system-sub002/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
// Lines are mapped separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:        d.EntryID,
		DocumentNumber: d.DocumentNumber,
		EntryDate:      d.EntryDate,
		EntryType:      string(d.EntryType),
		Narration:      d.Narration,
		FiscalPeriodID: d.FiscalPeriodID,
		TotalDebit:     d.TotalDebit,
		TotalCredit:    d.TotalCredit,
		Status:         string(d.Status),
		PostedBy:       d.PostedBy,
		PostedAt:       d.PostedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Reference != nil {
		m.ReferenceType = &d.Reference.Type
		m.ReferenceID = &d.Reference.ID
		m.ReferenceNumber = &d.Reference.Number
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:        m.EntryID,
		DocumentNumber: m.DocumentNumber,
		EntryDate:      m.EntryDate,
		EntryType:      domain.EntryType(m.EntryType),
		Narration:      m.Narration,
		FiscalPeriodID: m.FiscalPeriodID,
		TotalDebit:     m.TotalDebit,
		TotalCredit:    m.TotalCredit,
		Status:         domain.EntryStatus(m.Status),
		PostedBy:       m.PostedBy,
		PostedAt:       m.PostedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.ReferenceType != nil && m.ReferenceID != nil {
		d.Reference = &domain.Reference{
			Type: *m.ReferenceType,
			ID:   *m.ReferenceID,
		}
		if m.ReferenceNumber != nil {
			d.Reference.Number = *m.ReferenceNumber
		}
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	m := models.JournalLine{
		LineID:     d.LineID,
		EntryID:    d.EntryID,
		AccountID:  d.AccountID,
		LineNumber: d.LineNumber,
		Debit:      d.Debit,
		Credit:     d.Credit,
		CostCenter: d.CostCenter,
		CustomerID: d.CustomerID,
	}
	if d.Description != "" {
		desc := d.Description
		m.Description = &desc
	}
	return m
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	d := domain.JournalLine{
		LineID:     m.LineID,
		EntryID:    m.EntryID,
		AccountID:  m.AccountID,
		LineNumber: m.LineNumber,
		Debit:      m.Debit,
		Credit:     m.Credit,
		CostCenter: m.CostCenter,
		CustomerID: m.CustomerID,
	}
	if m.Description != nil {
		d.Description = *m.Description
	}
	return d
}
