package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"opsuite/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendVoucherIssuedEmail(ctx context.Context, email port.VoucherEmail) error {
	subject := fmt.Sprintf("%s %s issued", voucherTypeLabel(email.VoucherType), email.VoucherNumber)
	htmlBody := buildVoucherIssuedHTML(email)
	textBody := fmt.Sprintf(
		"Hi %s,\n\n%s %s has been issued for a total of Rs. %s.\n\n%s",
		email.ToName, voucherTypeLabel(email.VoucherType), email.VoucherNumber,
		email.GrandTotal, s.fromName)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{email.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func voucherTypeLabel(voucherType string) string {
	switch voucherType {
	case "sales_invoice":
		return "Invoice"
	case "sales_order":
		return "Sales Order"
	case "purchase_order":
		return "Purchase Order"
	case "grn":
		return "Goods Receipt Note"
	case "credit_note":
		return "Credit Note"
	default:
		return "Voucher"
	}
}

func buildVoucherIssuedHTML(email port.VoucherEmail) string {
	label := voucherTypeLabel(email.VoucherType)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s %s</h2>
  <p>Hi %s,</p>
  <p>%s <strong>%s</strong> has been issued for a total of <strong>&#8377;%s</strong>.</p>
  <p>Please reach out to us if any of the details look incorrect.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">This is an automated notification.</p>
</body>
</html>`, label, email.VoucherNumber, email.ToName, label, email.VoucherNumber, email.GrandTotal)
}
