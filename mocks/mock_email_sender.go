package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"opsuite/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVoucherIssuedEmail(ctx context.Context, email port.VoucherEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
