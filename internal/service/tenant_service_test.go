package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"opsuite/internal/domain"
	"opsuite/internal/service"
	"opsuite/mocks"
)

func TestTenantService_Create_Success(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	tenant, err := svc.Create(context.Background(), service.CreateTenantInput{
		Name:      "Acme Traders",
		Slug:      "acme-traders",
		StateCode: "27",
		GSTIN:     "27ABCDE1234F1Z5",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Acme Traders", tenant.Name)
	assert.Equal(t, "27", tenant.StateCode)
	assert.True(t, tenant.IsActive)
	repo.AssertExpectations(t)
}

func TestTenantService_Create_DuplicateSlug(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Tenant")).Return(domain.ErrDuplicateTenantSlug)

	tenant, err := svc.Create(context.Background(), service.CreateTenantInput{
		Name: "Acme Traders",
		Slug: "existing-slug",
	})

	assert.Nil(t, tenant)
	assert.ErrorIs(t, err, domain.ErrDuplicateTenantSlug)
}

func TestTenantService_Update_PartialFields(t *testing.T) {
	repo := new(mocks.MockTenantRepo)
	svc := service.NewTenantService(repo)

	tenantID := uuid.New()
	repo.On("GetByID", mock.Anything, tenantID).
		Return(&domain.Tenant{ID: tenantID, Name: "Old Name", StateCode: "27", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Tenant")).Return(nil)

	newState := "29"
	tenant, err := svc.Update(context.Background(), tenantID, service.UpdateTenantInput{StateCode: &newState})

	assert.NoError(t, err)
	assert.Equal(t, "Old Name", tenant.Name)
	assert.Equal(t, "29", tenant.StateCode)
}

func TestPartyService_Create_Success(t *testing.T) {
	repo := new(mocks.MockPartyRepo)
	svc := service.NewPartyService(repo)
	tenantID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Party")).Return(nil)

	party, err := svc.Create(context.Background(), tenantID, service.CreatePartyInput{
		Name:  "Sharma Supplies",
		Kind:  domain.PartyKindVendor,
		GSTIN: "29ABCDE1234F1Z5",
	})

	assert.NoError(t, err)
	assert.Equal(t, tenantID, party.TenantID)
	assert.Equal(t, domain.PartyKindVendor, party.Kind)
	assert.True(t, party.IsActive)
}

func TestPartyService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockPartyRepo)
	svc := service.NewPartyService(repo)
	tenantID, partyID := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, tenantID, partyID).Return(nil, domain.ErrPartyNotFound)

	party, err := svc.Update(context.Background(), tenantID, partyID, service.UpdatePartyInput{})

	assert.Nil(t, party)
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)
}
