package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "DRAFT"
	StatusPosted    EntryStatus = "POSTED"
	StatusCancelled EntryStatus = "CANCELLED"
)

// EntryType classifies how a journal entry came to exist.
type EntryType string

const (
	EntryOpening    EntryType = "OPENING"
	EntryManual     EntryType = "MANUAL"
	EntryAuto       EntryType = "AUTO"
	EntryAdjustment EntryType = "ADJUSTMENT"
	EntryClosing    EntryType = "CLOSING"
	EntryReversal   EntryType = "REVERSAL"
)

// IsManual reports whether users may create entries of this type directly.
// AUTO and REVERSAL entries are only produced by the ledger itself.
func (t EntryType) IsManual() bool {
	switch t {
	case EntryOpening, EntryManual, EntryAdjustment, EntryClosing:
		return true
	}
	return false
}

// ReversalNumberPrefix is prepended to the original document number of a reversed entry.
const ReversalNumberPrefix = "REV-"

// Reference points at the business record (or entry) an entry originates from.
type Reference struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Number string `json:"number"`
}

// JournalEntry is a balanced set of debit/credit lines recorded for one business event or manual action.
type JournalEntry struct {
	EntryID        string          `json:"entryID"`
	DocumentNumber string          `json:"documentNumber"` // Unique, human readable
	EntryDate      time.Time       `json:"entryDate"`
	EntryType      EntryType       `json:"entryType"`
	Narration      string          `json:"narration"`
	Reference      *Reference      `json:"reference,omitempty"`
	FiscalPeriodID *string         `json:"fiscalPeriodID,omitempty"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Status         EntryStatus     `json:"status"`
	PostedBy       *string         `json:"postedBy,omitempty"`
	PostedAt       *time.Time      `json:"postedAt,omitempty"`
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"`
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	LineNumber  int             `json:"lineNumber"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
	CostCenter  *string         `json:"costCenter,omitempty"`
	CustomerID  *string         `json:"customerID,omitempty"` // Receivable sub-ledger party
}

// IsDebit reports whether the line carries its amount on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// Swapped returns a copy of the line with debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	l.Debit, l.Credit = l.Credit, l.Debit
	return l
}

// IsReversal reports whether the entry was produced by reversing another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.EntryType == EntryReversal
}

// CanEdit reports whether lines and header may still change.
func (e *JournalEntry) CanEdit() error {
	if e.Status != StatusDraft {
		return fmt.Errorf("entry %s is %s; only DRAFT entries can be edited", e.DocumentNumber, e.Status)
	}
	return nil
}

// CanPost checks the draft → posted transition.
func (e *JournalEntry) CanPost() error {
	if e.Status != StatusDraft {
		return fmt.Errorf("entry %s is %s; only DRAFT entries can be posted", e.DocumentNumber, e.Status)
	}
	return nil
}

// CanDelete checks that the entry may be removed.
func (e *JournalEntry) CanDelete() error {
	if e.Status != StatusDraft {
		return fmt.Errorf("entry %s is %s; only DRAFT entries can be deleted", e.DocumentNumber, e.Status)
	}
	return nil
}

// CanCancel checks the draft → cancelled transition.
func (e *JournalEntry) CanCancel() error {
	if e.Status != StatusDraft {
		return fmt.Errorf("entry %s is %s; only DRAFT entries can be cancelled", e.DocumentNumber, e.Status)
	}
	return nil
}

// CanReverse checks that a reversal entry may be produced for this entry.
func (e *JournalEntry) CanReverse() error {
	if e.Status != StatusPosted {
		return fmt.Errorf("entry %s is %s; only POSTED entries can be reversed", e.DocumentNumber, e.Status)
	}
	if e.IsReversal() {
		return fmt.Errorf("entry %s is itself a reversal and cannot be reversed", e.DocumentNumber)
	}
	return nil
}

// ReversalNumber is the document number a reversal of this entry receives.
func (e *JournalEntry) ReversalNumber() string {
	return ReversalNumberPrefix + e.DocumentNumber
}

// JournalFilter narrows entry listings.
type JournalFilter struct {
	Status    *EntryStatus
	EntryType *EntryType
}
