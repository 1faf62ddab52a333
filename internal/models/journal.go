package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table. Nullable columns are pointers.
type JournalEntry struct {
	EntryID         string          `db:"entry_id"`
	DocumentNumber  string          `db:"document_number"`
	EntryDate       time.Time       `db:"entry_date"`
	EntryType       string          `db:"entry_type"`
	Narration       string          `db:"narration"`
	ReferenceType   *string         `db:"reference_type"`
	ReferenceID     *string         `db:"reference_id"`
	ReferenceNumber *string         `db:"reference_number"`
	FiscalPeriodID  *string         `db:"fiscal_period_id"`
	TotalDebit      decimal.Decimal `db:"total_debit"`
	TotalCredit     decimal.Decimal `db:"total_credit"`
	Status          string          `db:"status"`
	PostedBy        *string         `db:"posted_by"`
	PostedAt        *time.Time      `db:"posted_at"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	LineNumber  int             `db:"line_number"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description *string         `db:"description"`
	CostCenter  *string         `db:"cost_center"`
	CustomerID  *string         `db:"customer_id"`
}
