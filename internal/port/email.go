package port

import "context"

// VoucherEmail carries the fields rendered into the voucher notification.
type VoucherEmail struct {
	ToEmail       string
	ToName        string
	VoucherNumber string
	VoucherType   string
	GrandTotal    string
}

// EmailSender defines the contract for sending notification emails.
type EmailSender interface {
	SendVoucherIssuedEmail(ctx context.Context, email VoucherEmail) error
}
