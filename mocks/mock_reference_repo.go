package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"opsuite/internal/domain"
)

// MockReferenceRepo is a mock implementation of port.ReferenceRepository.
type MockReferenceRepo struct {
	mock.Mock
}

func (m *MockReferenceRepo) Attach(ctx context.Context, link *domain.ReferenceLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockReferenceRepo) Release(ctx context.Context, tenantID, linkID uuid.UUID) error {
	args := m.Called(ctx, tenantID, linkID)
	return args.Error(0)
}

func (m *MockReferenceRepo) ReleaseByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) error {
	args := m.Called(ctx, tenantID, voucherID)
	return args.Error(0)
}

func (m *MockReferenceRepo) ListBySourceLine(ctx context.Context, tenantID, sourceLineID uuid.UUID) ([]domain.ReferenceLink, error) {
	args := m.Called(ctx, tenantID, sourceLineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferenceLink), args.Error(1)
}

func (m *MockReferenceRepo) ListByVoucher(ctx context.Context, tenantID, voucherID uuid.UUID) ([]domain.ReferenceLink, error) {
	args := m.Called(ctx, tenantID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferenceLink), args.Error(1)
}
