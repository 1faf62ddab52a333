package services

import (
	"context"
	"fmt"
	"time"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portssvc "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/services"
	"github.com/KANAL1234/business-erp-system-sub002/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// postingSource is a loaded business event ready to be turned into journal lines.
type postingSource struct {
	record     any // validated before the rule runs
	number     string
	date       time.Time
	narration  string
	reference  domain.Reference
	buildLines func(b *lineBuilder)
}

// lineBuilder collects debit lines then credit lines, resolving each role through the directory.
// The first failure sticks and later calls are no-ops.
type lineBuilder struct {
	ctx       context.Context
	directory portssvc.AccountDirectorySvc
	debits    []domain.JournalLine
	credits   []domain.JournalLine
	err       error
}

// lineTags are the optional analytic fields carried by a line.
type lineTags struct {
	costCenter *string
	customerID *string
}

func (b *lineBuilder) add(debit bool, role domain.AccountRole, amount decimal.Decimal, description string, tags lineTags) {
	if b.err != nil {
		return
	}
	amount = accounting.Round(amount)
	if amount.IsZero() {
		return
	}
	if amount.IsNegative() {
		b.err = fmt.Errorf("%w: negative %s amount %s", apperrors.ErrValidation, role, amount.StringFixed(accounting.AmountPlaces))
		return
	}

	account, err := b.directory.Account(b.ctx, role)
	if err != nil {
		b.err = err
		return
	}

	line := domain.JournalLine{
		AccountID:   account.AccountID,
		Description: description,
		CostCenter:  tags.costCenter,
		CustomerID:  tags.customerID,
		Debit:       decimal.Zero,
		Credit:      decimal.Zero,
	}
	if debit {
		line.Debit = amount
		b.debits = append(b.debits, line)
	} else {
		line.Credit = amount
		b.credits = append(b.credits, line)
	}
}

func (b *lineBuilder) debit(role domain.AccountRole, amount decimal.Decimal, description string) {
	b.add(true, role, amount, description, lineTags{})
}

func (b *lineBuilder) credit(role domain.AccountRole, amount decimal.Decimal, description string) {
	b.add(false, role, amount, description, lineTags{})
}

// lines returns debits followed by credits, numbered from 1.
func (b *lineBuilder) lines() []domain.JournalLine {
	out := make([]domain.JournalLine, 0, len(b.debits)+len(b.credits))
	out = append(out, b.debits...)
	out = append(out, b.credits...)
	for i := range out {
		out[i].LineNumber = i + 1
	}
	return out
}

// posSaleLines: Dr Cash or Receivable (total) / Cr Sales Revenue (total - tax) + Sales Tax Payable (tax).
func posSaleLines(sale *domain.POSSale) func(b *lineBuilder) {
	return func(b *lineBuilder) {
		if sale.TaxAmount.GreaterThan(sale.TotalAmount) {
			b.err = fmt.Errorf("%w: sale %s tax exceeds total", apperrors.ErrValidation, sale.SaleNumber)
			return
		}
		net := sale.TotalAmount.Sub(sale.TaxAmount)

		if sale.PaymentMethod == domain.PaymentCash {
			b.debit(domain.RoleCash, sale.TotalAmount, "Cash sale "+sale.SaleNumber)
		} else {
			b.add(true, domain.RoleAccountsReceivable, sale.TotalAmount, "Credit sale "+sale.SaleNumber,
				lineTags{customerID: sale.CustomerID})
		}
		b.credit(domain.RoleSalesRevenue, net, "Sales revenue "+sale.SaleNumber)
		b.credit(domain.RoleSalesTaxPayable, sale.TaxAmount, "Sales tax "+sale.SaleNumber)
	}
}

// vendorBillLines: Dr Purchases (subtotal) + Input Tax (tax) / Cr Payable (subtotal + tax - WHT) + WHT Payable.
func vendorBillLines(bill *domain.VendorBill) func(b *lineBuilder) {
	return func(b *lineBuilder) {
		gross := bill.Subtotal.Add(bill.TaxAmount)
		if bill.WithholdingAmount.GreaterThan(gross) {
			b.err = fmt.Errorf("%w: bill %s withholding exceeds bill total", apperrors.ErrValidation, bill.BillNumber)
			return
		}

		b.debit(domain.RolePurchases, bill.Subtotal, "Purchases "+bill.BillNumber)
		b.debit(domain.RoleInputTax, bill.TaxAmount, "Input tax "+bill.BillNumber)
		b.credit(domain.RoleAccountsPayable, gross.Sub(bill.WithholdingAmount), "Payable to vendor "+bill.VendorID)
		b.credit(domain.RoleWithholdingPayable, bill.WithholdingAmount, "Withholding "+bill.BillNumber)
	}
}

// stockVariance splits an adjustment into the total value lost and the total value found.
func stockVariance(adj *domain.StockAdjustment) (decrease, increase decimal.Decimal) {
	decrease, increase = decimal.Zero, decimal.Zero
	for _, item := range adj.Items {
		value := item.Variance().Mul(item.UnitCost)
		switch {
		case value.IsNegative():
			decrease = decrease.Add(value.Neg())
		case value.IsPositive():
			increase = increase.Add(value)
		}
	}
	return accounting.Round(decrease), accounting.Round(increase)
}

// stockAdjustmentLines posts each direction as its own pair: losses Dr COGS / Cr Inventory,
// gains Dr Inventory / Cr COGS.
func stockAdjustmentLines(adj *domain.StockAdjustment) func(b *lineBuilder) {
	return func(b *lineBuilder) {
		decrease, increase := stockVariance(adj)
		b.debit(domain.RoleCostOfGoodsSold, decrease, "Stock shrinkage "+adj.AdjustmentNumber)
		b.debit(domain.RoleInventory, increase, "Stock gain "+adj.AdjustmentNumber)
		b.credit(domain.RoleInventory, decrease, "Stock shrinkage "+adj.AdjustmentNumber)
		b.credit(domain.RoleCostOfGoodsSold, increase, "Stock gain "+adj.AdjustmentNumber)
	}
}

// fuelLogLines: Dr Fuel Expense tagged with the cost center / Cr Cash or Accounts Payable.
func fuelLogLines(log *domain.FuelLog) func(b *lineBuilder) {
	return func(b *lineBuilder) {
		costCenter := log.CostCenter
		b.add(true, domain.RoleFuelExpense, log.Amount, "Fuel "+log.LogNumber+" vehicle "+log.VehicleID, lineTags{costCenter: &costCenter})
		if log.PaymentMethod == domain.PaymentCash {
			b.credit(domain.RoleCash, log.Amount, "Fuel paid in cash "+log.LogNumber)
		} else {
			b.credit(domain.RoleAccountsPayable, log.Amount, "Fuel on account "+log.LogNumber)
		}
	}
}
