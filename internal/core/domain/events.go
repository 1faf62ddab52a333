package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType identifies the kind of business event that can be posted automatically.
type EventType string

const (
	EventPOSSale         EventType = "POS_SALE"
	EventVendorBill      EventType = "VENDOR_BILL"
	EventStockAdjustment EventType = "STOCK_ADJUSTMENT"
	EventFuelLog         EventType = "FUEL_LOG"
)

// IsValid reports whether t is a known event type.
func (t EventType) IsValid() bool {
	switch t {
	case EventPOSSale, EventVendorBill, EventStockAdjustment, EventFuelLog:
		return true
	}
	return false
}

// DocumentPrefix is the reference-derived journal number prefix for this event type.
func (t EventType) DocumentPrefix() string {
	switch t {
	case EventPOSSale:
		return "JE-POS-"
	case EventVendorBill:
		return "JE-VB-"
	case EventStockAdjustment:
		return "JE-ADJ-"
	case EventFuelLog:
		return "JE-FUEL-"
	}
	return "JE-" + string(t) + "-"
}

// PaymentMethod tells how a sale or expense was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCredit PaymentMethod = "CREDIT"
)

// POSSale is a completed point-of-sale transaction.
type POSSale struct {
	SaleID        string          `validate:"required"`
	SaleNumber    string          `validate:"required"`
	SaleDate      time.Time       `validate:"required"`
	PaymentMethod PaymentMethod   `validate:"required,oneof=CASH CREDIT"`
	CustomerID    *string         `validate:"required_if=PaymentMethod CREDIT"`
	TotalAmount   decimal.Decimal // Tax inclusive
	TaxAmount     decimal.Decimal
}

// VendorBill is an approved purchase bill.
type VendorBill struct {
	BillID            string    `validate:"required"`
	BillNumber        string    `validate:"required"`
	BillDate          time.Time `validate:"required"`
	VendorID          string    `validate:"required"`
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	WithholdingAmount decimal.Decimal
}

// StockAdjustmentItem is one counted product in an adjustment.
type StockAdjustmentItem struct {
	ProductID        string `validate:"required"`
	SystemQuantity   decimal.Decimal
	PhysicalQuantity decimal.Decimal
	UnitCost         decimal.Decimal
}

// Variance is physical minus system quantity; negative means stock was lost.
func (i StockAdjustmentItem) Variance() decimal.Decimal {
	return i.PhysicalQuantity.Sub(i.SystemQuantity)
}

// StockAdjustment is an approved physical stock count adjustment.
type StockAdjustment struct {
	AdjustmentID     string                `validate:"required"`
	AdjustmentNumber string                `validate:"required"`
	AdjustmentDate   time.Time             `validate:"required"`
	Items            []StockAdjustmentItem `validate:"required,min=1,dive"`
}

// FuelLog is a fuel expense recorded against a vehicle.
type FuelLog struct {
	FuelLogID     string        `validate:"required"`
	LogNumber     string        `validate:"required"`
	LogDate       time.Time     `validate:"required"`
	VehicleID     string        `validate:"required"`
	CostCenter    string        `validate:"required"`
	PaymentMethod PaymentMethod `validate:"required,oneof=CASH CREDIT"`
	Amount        decimal.Decimal
}

// PostingOutcome describes what an automatic posting did.
type PostingOutcome string

const (
	OutcomePosted        PostingOutcome = "POSTED"
	OutcomeAlreadyPosted PostingOutcome = "ALREADY_POSTED"
	OutcomeSkipped       PostingOutcome = "SKIPPED"
)

// PostingResult is returned by the automatic posting path. Entry is nil when skipped.
type PostingResult struct {
	Outcome PostingOutcome `json:"outcome"`
	Entry   *JournalEntry  `json:"entry,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	// Retryable marks a skip caused by account configuration, which may succeed once fixed.
	Retryable bool `json:"-"`
}
