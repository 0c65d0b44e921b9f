package port

import (
	"context"

	"github.com/google/uuid"

	"opsuite/internal/domain"
)

// ReferenceRepository persists reference links and enforces the consumption
// invariant at the database layer: the sum of active consumed quantities for
// a source line never exceeds its original quantity. Attach must perform the
// quantity check and the draw-down as one atomic operation so concurrent
// attaches against the same source line cannot oversell it.
type ReferenceRepository interface {
	// Attach draws link.ConsumedQuantity from the source line and inserts
	// the link. Returns domain.ErrInsufficientQuantity when the draw would
	// exceed the remaining quantity and domain.ErrInvalidReference when the
	// source line does not exist or belongs to a cancelled voucher.
	Attach(ctx context.Context, link *domain.ReferenceLink) error

	// Release deactivates one link and returns its quantity to the source line.
	Release(ctx context.Context, tenantID, linkID uuid.UUID) error

	// ReleaseByVoucher deactivates all active links created by a voucher,
	// used when the voucher is cancelled.
	ReleaseByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) error

	ListBySourceLine(ctx context.Context, tenantID, sourceLineID uuid.UUID) ([]domain.ReferenceLink, error)
	ListByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) ([]domain.ReferenceLink, error)
}

// ReportRepository provides aggregation queries for financial reports.
type ReportRepository interface {
	TaxSummary(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.TaxSummaryRow, error)
	VoucherRegister(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.Voucher, error)
}
