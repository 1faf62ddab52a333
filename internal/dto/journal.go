package dto

import (
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit line of a manual entry.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	CostCenter  *string         `json:"costCenter"`
}

// ReferenceRequest optionally links a manual entry to a business record.
type ReferenceRequest struct {
	Type   string `json:"type" binding:"required"`
	ID     string `json:"id" binding:"required"`
	Number string `json:"number"`
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
type CreateJournalEntryRequest struct {
	EntryDate time.Time            `json:"entryDate" binding:"required"`
	EntryType domain.EntryType     `json:"entryType" binding:"required,oneof=OPENING MANUAL ADJUSTMENT CLOSING"`
	Narration string               `json:"narration" binding:"required"`
	Reference *ReferenceRequest    `json:"reference"`
	Lines     []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalLinesRequest replaces every line of a draft entry.
type UpdateJournalLinesRequest struct {
	Lines []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Status    string  `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	EntryType string  `form:"entryType" binding:"omitempty,oneof=OPENING MANUAL AUTO ADJUSTMENT CLOSING REVERSAL"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	CostCenter  *string         `json:"costCenter,omitempty"`
	CustomerID  *string         `json:"customerID,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID        string                `json:"entryID"`
	DocumentNumber string                `json:"documentNumber"`
	EntryDate      time.Time             `json:"entryDate"`
	EntryType      domain.EntryType      `json:"entryType"`
	Narration      string                `json:"narration"`
	Reference      *domain.Reference     `json:"reference,omitempty"`
	FiscalPeriodID *string               `json:"fiscalPeriodID,omitempty"`
	TotalDebit     decimal.Decimal       `json:"totalDebit"`
	TotalCredit    decimal.Decimal       `json:"totalCredit"`
	Status         domain.EntryStatus    `json:"status"`
	PostedBy       *string               `json:"postedBy,omitempty"`
	PostedAt       *time.Time            `json:"postedAt,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalEntriesResponse is a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalLineResponses converts domain lines to response DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	if len(lines) == 0 {
		return nil
	}
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			LineNumber:  l.LineNumber,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
			CostCenter:  l.CostCenter,
			CustomerID:  l.CustomerID,
		}
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:        e.EntryID,
		DocumentNumber: e.DocumentNumber,
		EntryDate:      e.EntryDate,
		EntryType:      e.EntryType,
		Narration:      e.Narration,
		Reference:      e.Reference,
		FiscalPeriodID: e.FiscalPeriodID,
		TotalDebit:     e.TotalDebit,
		TotalCredit:    e.TotalCredit,
		Status:         e.Status,
		PostedBy:       e.PostedBy,
		PostedAt:       e.PostedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
		Lines:          ToJournalLineResponses(e.Lines),
	}
}
