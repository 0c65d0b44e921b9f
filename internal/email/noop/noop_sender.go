package noop

import (
	"context"
	"log"

	"opsuite/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendVoucherIssuedEmail(_ context.Context, email port.VoucherEmail) error {
	log.Printf("[NOOP EMAIL] Voucher %s (%s) issued notification for %s (%s), total %s",
		email.VoucherNumber, email.VoucherType, email.ToName, email.ToEmail, email.GrandTotal)
	return nil
}
