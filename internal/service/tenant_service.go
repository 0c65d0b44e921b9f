package service

import (
	"context"

	"github.com/google/uuid"

	"opsuite/internal/domain"
	"opsuite/internal/port"
)

// CreateTenantInput is the DTO for registering a tenant.
type CreateTenantInput struct {
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" binding:"required"`
	StateCode string `json:"state_code"`
	GSTIN     string `json:"gstin"`
}

// UpdateTenantInput is the DTO for updating a tenant. Nil fields are unchanged.
type UpdateTenantInput struct {
	Name      *string `json:"name,omitempty"`
	StateCode *string `json:"state_code,omitempty"`
	GSTIN     *string `json:"gstin,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// TenantService defines the tenant management contract.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	tenantRepo port.TenantRepository
}

// NewTenantService creates a new TenantService implementation.
func NewTenantService(tenantRepo port.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

func (s *tenantService) Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error) {
	tenant := &domain.Tenant{
		Name:      input.Name,
		Slug:      input.Slug,
		StateCode: input.StateCode,
		GSTIN:     input.GSTIN,
		IsActive:  true,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) List(ctx context.Context, offset, limit int) ([]domain.Tenant, int, error) {
	return s.tenantRepo.List(ctx, offset, limit)
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, input UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.StateCode != nil {
		tenant.StateCode = *input.StateCode
	}
	if input.GSTIN != nil {
		tenant.GSTIN = *input.GSTIN
	}
	if input.IsActive != nil {
		tenant.IsActive = *input.IsActive
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.tenantRepo.Delete(ctx, id)
}
