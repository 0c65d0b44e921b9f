package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"opsuite/internal/domain"
	"opsuite/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) TaxSummary(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.TaxSummaryRow, error) {
	query := `
		SELECT
			vl.tax_rate_percent,
			COALESCE(SUM(vl.taxable_amount), 0) AS taxable_amount,
			COALESCE(SUM(vl.cgst_amount), 0) AS cgst,
			COALESCE(SUM(vl.sgst_amount), 0) AS sgst,
			COALESCE(SUM(vl.igst_amount), 0) AS igst,
			COUNT(DISTINCT vl.voucher_id) AS voucher_count
		FROM voucher_lines vl
		JOIN vouchers v ON v.id = vl.voucher_id
		WHERE v.tenant_id = $1 AND v.status = 'issued'`
	args := []interface{}{tenantID}
	query, args = applyReportFilters(query, args, filters)
	query += " GROUP BY vl.tax_rate_percent ORDER BY vl.tax_rate_percent ASC"

	var rows []domain.TaxSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("reportRepo.TaxSummary: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) VoucherRegister(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.Voucher, error) {
	query := `
		SELECT v.* FROM vouchers v
		WHERE v.tenant_id = $1 AND v.status = 'issued'`
	args := []interface{}{tenantID}
	query, args = applyReportFilters(query, args, filters)
	query += " ORDER BY v.voucher_date ASC, v.number ASC"

	var vouchers []domain.Voucher
	if err := r.db.SelectContext(ctx, &vouchers, query, args...); err != nil {
		return nil, fmt.Errorf("reportRepo.VoucherRegister: %w", err)
	}
	return vouchers, nil
}

func applyReportFilters(query string, args []interface{}, filters domain.ReportFilters) (string, []interface{}) {
	if filters.From != nil {
		args = append(args, *filters.From)
		query += fmt.Sprintf(" AND v.voucher_date >= $%d", len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		query += fmt.Sprintf(" AND v.voucher_date <= $%d", len(args))
	}
	if filters.VoucherType != nil {
		args = append(args, *filters.VoucherType)
		query += fmt.Sprintf(" AND v.voucher_type = $%d", len(args))
	}
	return query, args
}
