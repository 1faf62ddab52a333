package repositories

import (
	"context"

	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
)

// EventSourceRepository loads the business records the posting engine maps to journal entries.
// Each finder returns apperrors.ErrNotFound for an unknown ID.
type EventSourceRepository interface {
	FindPOSSale(ctx context.Context, saleID string) (*domain.POSSale, error)
	FindVendorBill(ctx context.Context, billID string) (*domain.VendorBill, error)
	FindStockAdjustment(ctx context.Context, adjustmentID string) (*domain.StockAdjustment, error)
	FindFuelLog(ctx context.Context, fuelLogID string) (*domain.FuelLog, error)
}
