package port

import (
	"context"

	"github.com/google/uuid"

	"opsuite/internal/domain"
)

// TenantRepository defines the contract for tenant persistence.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PartyRepository defines the contract for counterparty master data.
// All query methods include tenantID to enforce tenant isolation.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, kind *domain.PartyKind, offset, limit int) ([]domain.Party, int, error)
	Update(ctx context.Context, party *domain.Party) error
	Delete(ctx context.Context, tenantID, partyID uuid.UUID) error
}

// VoucherRepository defines the contract for voucher persistence. Create
// stores the voucher together with its lines atomically; lines are never
// written without their recomputed totals.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *domain.Voucher) error
	GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*domain.Voucher, error)
	GetLine(ctx context.Context, tenantID, lineID uuid.UUID) (*domain.VoucherLine, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, voucherType *domain.VoucherType, offset, limit int) ([]domain.Voucher, int, error)
	SetStatus(ctx context.Context, tenantID, voucherID uuid.UUID, status domain.VoucherStatus) error
}
