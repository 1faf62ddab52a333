package domain

import "time"

// PeriodStatus tracks whether a fiscal period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FiscalPeriod is an accounting period window, typically one month ("2025-01").
type FiscalPeriod struct {
	PeriodID  string       `json:"periodID"`
	Code      string       `json:"code"`
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
}

// Contains reports whether t falls within the period, inclusive of both ends.
func (p FiscalPeriod) Contains(t time.Time) bool {
	d := t.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// IsOpen reports whether entries may be posted into the period.
func (p FiscalPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}
