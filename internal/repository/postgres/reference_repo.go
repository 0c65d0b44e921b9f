package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"opsuite/internal/domain"
	"opsuite/internal/port"
)

type referenceRepo struct {
	db *sqlx.DB
}

// NewReferenceRepo creates a new PostgreSQL-backed ReferenceRepository.
func NewReferenceRepo(db *sqlx.DB) port.ReferenceRepository {
	return &referenceRepo{db: db}
}

// Attach draws the requested quantity from the source line and records the
// link in one transaction. The quantity check and the draw-down are a single
// conditional UPDATE, so concurrent attaches against the same source line
// serialize on the row and the consumption invariant holds without
// application-level locking across processes.
func (r *referenceRepo) Attach(ctx context.Context, link *domain.ReferenceLink) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("referenceRepo.Attach begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE voucher_lines
		SET
			consumed_quantity = consumed_quantity + $3,
			consumption_status = CASE
				WHEN consumed_quantity + $3 >= quantity THEN 'fully_consumed'
				ELSE 'partially_consumed'
			END
		WHERE id = $1 AND tenant_id = $2
		  AND consumed_quantity + $3 <= quantity
		  AND EXISTS (
				SELECT 1 FROM vouchers v
				WHERE v.id = voucher_lines.voucher_id AND v.status = 'issued'
		  )`,
		link.SourceLineID, link.TenantID, link.ConsumedQuantity)
	if err != nil {
		return fmt.Errorf("referenceRepo.Attach draw-down: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a missing/cancelled source from an over-draw.
		var exists bool
		err = tx.GetContext(ctx, &exists, `
			SELECT EXISTS (
				SELECT 1 FROM voucher_lines vl
				JOIN vouchers v ON v.id = vl.voucher_id
				WHERE vl.id = $1 AND vl.tenant_id = $2 AND v.status = 'issued'
			)`, link.SourceLineID, link.TenantID)
		if err != nil {
			return fmt.Errorf("referenceRepo.Attach existence check: %w", err)
		}
		if !exists {
			return domain.ErrInvalidReference
		}
		return domain.ErrInsufficientQuantity
	}

	link.ID = uuid.New()
	link.IsActive = true
	link.CreatedAt = time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reference_links (
			id, tenant_id, source_type, source_id, source_line_id, voucher_id,
			consumed_quantity, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		link.ID, link.TenantID, link.SourceType, link.SourceID, link.SourceLineID,
		link.VoucherID, link.ConsumedQuantity, link.IsActive, link.CreatedAt)
	if err != nil {
		return fmt.Errorf("referenceRepo.Attach insert link: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("referenceRepo.Attach commit: %w", err)
	}
	return nil
}

func (r *referenceRepo) Release(ctx context.Context, tenantID, linkID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("referenceRepo.Release begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var link domain.ReferenceLink
	err = tx.GetContext(ctx, &link,
		"SELECT * FROM reference_links WHERE id = $1 AND tenant_id = $2 AND is_active", linkID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("referenceRepo.Release lookup: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE reference_links SET is_active = false WHERE id = $1", linkID)
	if err != nil {
		return fmt.Errorf("referenceRepo.Release deactivate: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE voucher_lines
		SET
			consumed_quantity = GREATEST(consumed_quantity - $3, 0),
			consumption_status = CASE
				WHEN consumed_quantity - $3 <= 0 THEN 'available'
				WHEN consumed_quantity - $3 < quantity THEN 'partially_consumed'
				ELSE 'fully_consumed'
			END
		WHERE id = $1 AND tenant_id = $2`,
		link.SourceLineID, tenantID, link.ConsumedQuantity)
	if err != nil {
		return fmt.Errorf("referenceRepo.Release return quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("referenceRepo.Release commit: %w", err)
	}
	return nil
}

func (r *referenceRepo) ReleaseByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		WITH released AS (
			UPDATE reference_links
			SET is_active = false
			WHERE voucher_id = $1 AND tenant_id = $2 AND is_active
			RETURNING source_line_id, consumed_quantity
		), totals AS (
			SELECT source_line_id, SUM(consumed_quantity) AS qty
			FROM released GROUP BY source_line_id
		)
		UPDATE voucher_lines vl
		SET
			consumed_quantity = GREATEST(vl.consumed_quantity - t.qty, 0),
			consumption_status = CASE
				WHEN vl.consumed_quantity - t.qty <= 0 THEN 'available'
				WHEN vl.consumed_quantity - t.qty < vl.quantity THEN 'partially_consumed'
				ELSE 'fully_consumed'
			END
		FROM totals t
		WHERE vl.id = t.source_line_id AND vl.tenant_id = $2`,
		voucherID, tenantID)
	if err != nil {
		return fmt.Errorf("referenceRepo.ReleaseByVoucher: %w", err)
	}
	return nil
}

func (r *referenceRepo) ListBySourceLine(ctx context.Context, tenantID, sourceLineID uuid.UUID) ([]domain.ReferenceLink, error) {
	var links []domain.ReferenceLink
	err := r.db.SelectContext(ctx, &links, `
		SELECT * FROM reference_links
		WHERE source_line_id = $1 AND tenant_id = $2 AND is_active
		ORDER BY created_at ASC`, sourceLineID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.ListBySourceLine: %w", err)
	}
	return links, nil
}

func (r *referenceRepo) ListByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) ([]domain.ReferenceLink, error) {
	var links []domain.ReferenceLink
	err := r.db.SelectContext(ctx, &links, `
		SELECT * FROM reference_links
		WHERE voucher_id = $1 AND tenant_id = $2 AND is_active
		ORDER BY created_at ASC`, voucherID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.ListByVoucher: %w", err)
	}
	return links, nil
}
