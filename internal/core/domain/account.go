package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account in the chart of accounts.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	Code        string          `json:"code"`      // Unique, e.g. "1200"
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"` // Derived; written only by the balance aggregator
	AuditFields
}
