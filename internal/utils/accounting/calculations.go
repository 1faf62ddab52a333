package accounting

import (
	"fmt"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AmountPlaces is the fixed scale for every monetary amount in the ledger.
const AmountPlaces = 2

// Round brings an amount to the ledger scale.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// SignedBalance applies the normal-balance convention of an account type to its summed debits and credits.
// ASSET/EXPENSE -> debit - credit
// LIABILITY/EQUITY/REVENUE -> credit - debit
func SignedBalance(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return Round(debit.Sub(credit)), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return Round(credit.Sub(debit)), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateLine checks the one-sided, non-negative, non-zero rule for a single line.
func ValidateLine(line domain.JournalLine) error {
	debit, credit := Round(line.Debit), Round(line.Credit)
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("line %d: amounts must not be negative", line.LineNumber)
	}
	if debit.IsPositive() && credit.IsPositive() {
		return fmt.Errorf("line %d: a line cannot carry both a debit and a credit", line.LineNumber)
	}
	if debit.IsZero() && credit.IsZero() {
		return fmt.Errorf("line %d: a line must carry a debit or a credit", line.LineNumber)
	}
	return nil
}

// ValidateLinesBalance checks the per-line rules and that total debits equal total credits.
// It returns the totals on success.
func ValidateLinesBalance(lines []domain.JournalLine) (decimal.Decimal, decimal.Decimal, error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("journal entry must have at least two lines")
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		totalDebit = totalDebit.Add(Round(line.Debit))
		totalCredit = totalCredit.Add(Round(line.Credit))
	}

	if !totalDebit.Equal(totalCredit) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("journal entry does not balance: debits %s, credits %s",
			totalDebit.StringFixed(AmountPlaces), totalCredit.StringFixed(AmountPlaces))
	}
	return totalDebit, totalCredit, nil
}
