package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"opsuite/internal/domain"
)

// MockVoucherRepo is a mock implementation of port.VoucherRepository.
type MockVoucherRepo struct {
	mock.Mock
}

func (m *MockVoucherRepo) Create(ctx context.Context, voucher *domain.Voucher) error {
	args := m.Called(ctx, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepo) GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*domain.Voucher, error) {
	args := m.Called(ctx, tenantID, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepo) GetLine(ctx context.Context, tenantID, lineID uuid.UUID) (*domain.VoucherLine, error) {
	args := m.Called(ctx, tenantID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoucherLine), args.Error(1)
}

func (m *MockVoucherRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, voucherType *domain.VoucherType, offset, limit int) ([]domain.Voucher, int, error) {
	args := m.Called(ctx, tenantID, voucherType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Voucher), args.Int(1), args.Error(2)
}

func (m *MockVoucherRepo) SetStatus(ctx context.Context, tenantID, voucherID uuid.UUID, status domain.VoucherStatus) error {
	args := m.Called(ctx, tenantID, voucherID, status)
	return args.Error(0)
}
