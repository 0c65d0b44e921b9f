package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"opsuite/internal/domain"
	"opsuite/internal/port"
)

type voucherRepo struct {
	db *sqlx.DB
}

// NewVoucherRepo creates a new PostgreSQL-backed VoucherRepository.
func NewVoucherRepo(db *sqlx.DB) port.VoucherRepository {
	return &voucherRepo{db: db}
}

func (r *voucherRepo) Create(ctx context.Context, voucher *domain.Voucher) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("voucherRepo.Create begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if voucher.ID == uuid.Nil {
		voucher.ID = uuid.New()
	}
	now := time.Now().UTC()
	voucher.CreatedAt = now
	voucher.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vouchers (
			id, tenant_id, party_id, voucher_type, status, number, voucher_date,
			discount_type, discount_value,
			subtotal, total_discount, taxable_amount, cgst, sgst, igst, round_off, grand_total,
			intrastate, jurisdiction_assumed, notes, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		voucher.ID, voucher.TenantID, voucher.PartyID, voucher.Type, voucher.Status,
		voucher.Number, voucher.VoucherDate, voucher.DiscountType, voucher.DiscountValue,
		voucher.Subtotal, voucher.TotalDiscount, voucher.TaxableAmount,
		voucher.CGST, voucher.SGST, voucher.IGST, voucher.RoundOff, voucher.GrandTotal,
		voucher.Intrastate, voucher.JurisdictionAssumed, voucher.Notes,
		voucher.CreatedBy, voucher.CreatedAt, voucher.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "number") {
			return domain.ErrDuplicateVoucherNo
		}
		return fmt.Errorf("voucherRepo.Create voucher: %w", err)
	}

	for i := range voucher.Lines {
		line := &voucher.Lines[i]
		line.ID = uuid.New()
		line.VoucherID = voucher.ID
		line.TenantID = voucher.TenantID
		line.Position = i
		line.CreatedAt = now
		if line.ConsumptionStatus == "" {
			line.ConsumptionStatus = domain.ConsumptionAvailable
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO voucher_lines (
				id, voucher_id, tenant_id, position, product_id, description, hsn_code,
				quantity, unit, unit_price, tax_rate_percent, discount_type, discount_value,
				taxable_amount, cgst_amount, sgst_amount, igst_amount, line_total,
				consumed_quantity, consumption_status, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
			line.ID, line.VoucherID, line.TenantID, line.Position, line.ProductID,
			line.Description, line.HSNCode, line.Quantity, line.Unit, line.UnitPrice,
			line.TaxRatePercent, line.DiscountType, line.DiscountValue,
			line.TaxableAmount, line.CGSTAmount, line.SGSTAmount, line.IGSTAmount,
			line.LineTotal, line.ConsumedQuantity, line.ConsumptionStatus, line.CreatedAt)
		if err != nil {
			return fmt.Errorf("voucherRepo.Create line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("voucherRepo.Create commit: %w", err)
	}
	return nil
}

func (r *voucherRepo) GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*domain.Voucher, error) {
	var voucher domain.Voucher
	err := r.db.GetContext(ctx, &voucher,
		"SELECT * FROM vouchers WHERE id = $1 AND tenant_id = $2", voucherID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("voucherRepo.GetByID: %w", err)
	}

	err = r.db.SelectContext(ctx, &voucher.Lines,
		"SELECT * FROM voucher_lines WHERE voucher_id = $1 AND tenant_id = $2 ORDER BY position ASC",
		voucherID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("voucherRepo.GetByID lines: %w", err)
	}
	return &voucher, nil
}

func (r *voucherRepo) GetLine(ctx context.Context, tenantID, lineID uuid.UUID) (*domain.VoucherLine, error) {
	var line domain.VoucherLine
	err := r.db.GetContext(ctx, &line,
		"SELECT * FROM voucher_lines WHERE id = $1 AND tenant_id = $2", lineID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidReference
		}
		return nil, fmt.Errorf("voucherRepo.GetLine: %w", err)
	}
	return &line, nil
}

func (r *voucherRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, voucherType *domain.VoucherType, offset, limit int) ([]domain.Voucher, int, error) {
	countQuery := "SELECT COUNT(*) FROM vouchers WHERE tenant_id = $1"
	listQuery := "SELECT * FROM vouchers WHERE tenant_id = $1"
	args := []interface{}{tenantID}

	if voucherType != nil {
		countQuery += " AND voucher_type = $2"
		listQuery += " AND voucher_type = $2"
		args = append(args, *voucherType)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("voucherRepo.ListByTenant count: %w", err)
	}

	listQuery += fmt.Sprintf(" ORDER BY voucher_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var vouchers []domain.Voucher
	if err := r.db.SelectContext(ctx, &vouchers, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("voucherRepo.ListByTenant: %w", err)
	}
	return vouchers, total, nil
}

func (r *voucherRepo) SetStatus(ctx context.Context, tenantID, voucherID uuid.UUID, status domain.VoucherStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE vouchers SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4",
		status, time.Now().UTC(), voucherID, tenantID)
	if err != nil {
		return fmt.Errorf("voucherRepo.SetStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVoucherNotFound
	}
	return nil
}
