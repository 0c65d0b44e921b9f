package service

import (
	"context"

	"github.com/google/uuid"

	"opsuite/internal/domain"
	"opsuite/internal/port"
)

// CreatePartyInput is the DTO for creating a party.
type CreatePartyInput struct {
	Name      string           `json:"name" binding:"required"`
	Kind      domain.PartyKind `json:"kind" binding:"required"`
	GSTIN     string           `json:"gstin"`
	StateCode string           `json:"state_code"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Address   string           `json:"address"`
}

// UpdatePartyInput is the DTO for updating a party. Nil fields are unchanged.
type UpdatePartyInput struct {
	Name      *string `json:"name,omitempty"`
	GSTIN     *string `json:"gstin,omitempty"`
	StateCode *string `json:"state_code,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// PartyService defines the party management contract.
type PartyService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreatePartyInput) (*domain.Party, error)
	GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error)
	List(ctx context.Context, tenantID uuid.UUID, kind *domain.PartyKind, offset, limit int) ([]domain.Party, int, error)
	Update(ctx context.Context, tenantID, partyID uuid.UUID, input UpdatePartyInput) (*domain.Party, error)
	Delete(ctx context.Context, tenantID, partyID uuid.UUID) error
}

type partyService struct {
	partyRepo port.PartyRepository
}

// NewPartyService creates a new PartyService implementation.
func NewPartyService(partyRepo port.PartyRepository) PartyService {
	return &partyService{partyRepo: partyRepo}
}

func (s *partyService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePartyInput) (*domain.Party, error) {
	party := &domain.Party{
		TenantID:  tenantID,
		Name:      input.Name,
		Kind:      input.Kind,
		GSTIN:     input.GSTIN,
		StateCode: input.StateCode,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		IsActive:  true,
	}
	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *partyService) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*domain.Party, error) {
	return s.partyRepo.GetByID(ctx, tenantID, partyID)
}

func (s *partyService) List(ctx context.Context, tenantID uuid.UUID, kind *domain.PartyKind, offset, limit int) ([]domain.Party, int, error) {
	return s.partyRepo.ListByTenant(ctx, tenantID, kind, offset, limit)
}

func (s *partyService) Update(ctx context.Context, tenantID, partyID uuid.UUID, input UpdatePartyInput) (*domain.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		party.Name = *input.Name
	}
	if input.GSTIN != nil {
		party.GSTIN = *input.GSTIN
	}
	if input.StateCode != nil {
		party.StateCode = *input.StateCode
	}
	if input.Email != nil {
		party.Email = *input.Email
	}
	if input.Phone != nil {
		party.Phone = *input.Phone
	}
	if input.Address != nil {
		party.Address = *input.Address
	}
	if err := s.partyRepo.Update(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *partyService) Delete(ctx context.Context, tenantID, partyID uuid.UUID) error {
	return s.partyRepo.Delete(ctx, tenantID, partyID)
}
