package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/KANAL1234/business-erp-system-sub002/internal/apperrors"
	"github.com/KANAL1234/business-erp-system-sub002/internal/core/domain"
	portsrepo "github.com/KANAL1234/business-erp-system-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxEventRepository reads the business records produced by the sales, purchasing,
// inventory and fleet modules.
type PgxEventRepository struct {
	BaseRepository
}

func newPgxEventRepository(pool DBPool) *PgxEventRepository {
	return &PgxEventRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EventSourceRepository = (*PgxEventRepository)(nil)

func notFound(what, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, what, id)
}

func notFoundOr(err error, what, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(what, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", what, id, err)
}

// FindPOSSale loads a point-of-sale transaction.
func (r *PgxEventRepository) FindPOSSale(ctx context.Context, saleID string) (*domain.POSSale, error) {
	if !validUUID(saleID) {
		return nil, notFound("pos sale", saleID)
	}
	query := `
		SELECT sale_id, sale_number, sale_date, payment_method, customer_id, total_amount, tax_amount
		FROM pos_sales WHERE sale_id = $1;
	`
	var (
		s      domain.POSSale
		method string
	)
	err := r.Pool.QueryRow(ctx, query, saleID).Scan(
		&s.SaleID, &s.SaleNumber, &s.SaleDate, &method, &s.CustomerID, &s.TotalAmount, &s.TaxAmount,
	)
	if err != nil {
		return nil, notFoundOr(err, "pos sale", saleID)
	}
	s.PaymentMethod = domain.PaymentMethod(method)
	return &s, nil
}

// FindVendorBill loads a vendor bill.
func (r *PgxEventRepository) FindVendorBill(ctx context.Context, billID string) (*domain.VendorBill, error) {
	if !validUUID(billID) {
		return nil, notFound("vendor bill", billID)
	}
	query := `
		SELECT bill_id, bill_number, bill_date, vendor_id, subtotal, tax_amount, withholding_amount
		FROM vendor_bills WHERE bill_id = $1;
	`
	var b domain.VendorBill
	err := r.Pool.QueryRow(ctx, query, billID).Scan(
		&b.BillID, &b.BillNumber, &b.BillDate, &b.VendorID, &b.Subtotal, &b.TaxAmount, &b.WithholdingAmount,
	)
	if err != nil {
		return nil, notFoundOr(err, "vendor bill", billID)
	}
	return &b, nil
}

// FindStockAdjustment loads an adjustment with its counted items.
func (r *PgxEventRepository) FindStockAdjustment(ctx context.Context, adjustmentID string) (*domain.StockAdjustment, error) {
	if !validUUID(adjustmentID) {
		return nil, notFound("stock adjustment", adjustmentID)
	}
	var a domain.StockAdjustment
	err := r.Pool.QueryRow(ctx, `
		SELECT adjustment_id, adjustment_number, adjustment_date
		FROM stock_adjustments WHERE adjustment_id = $1;`, adjustmentID,
	).Scan(&a.AdjustmentID, &a.AdjustmentNumber, &a.AdjustmentDate)
	if err != nil {
		return nil, notFoundOr(err, "stock adjustment", adjustmentID)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT product_id, system_quantity, physical_quantity, unit_cost
		FROM stock_adjustment_items
		WHERE adjustment_id = $1
		ORDER BY product_id;`, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock adjustment items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.StockAdjustmentItem
		if err := rows.Scan(&item.ProductID, &item.SystemQuantity, &item.PhysicalQuantity, &item.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan stock adjustment item: %w", err)
		}
		a.Items = append(a.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock adjustment items: %w", err)
	}
	return &a, nil
}

// FindFuelLog loads a fuel log.
func (r *PgxEventRepository) FindFuelLog(ctx context.Context, fuelLogID string) (*domain.FuelLog, error) {
	if !validUUID(fuelLogID) {
		return nil, notFound("fuel log", fuelLogID)
	}
	query := `
		SELECT fuel_log_id, log_number, log_date, vehicle_id, cost_center, payment_method, amount
		FROM fuel_logs WHERE fuel_log_id = $1;
	`
	var (
		f      domain.FuelLog
		method string
	)
	err := r.Pool.QueryRow(ctx, query, fuelLogID).Scan(
		&f.FuelLogID, &f.LogNumber, &f.LogDate, &f.VehicleID, &f.CostCenter, &method, &f.Amount,
	)
	if err != nil {
		return nil, notFoundOr(err, "fuel log", fuelLogID)
	}
	f.PaymentMethod = domain.PaymentMethod(method)
	return &f, nil
}
