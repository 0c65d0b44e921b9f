package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"opsuite/internal/domain"
	"opsuite/internal/port"
	"opsuite/internal/voucher"
)

// VoucherLineInput is the DTO for one voucher line. Numeric fields use
// FlexDecimal so partially-typed or locale-formatted form values normalize
// instead of failing the bind. SourceLineID, when set, consumes the line's
// quantity from that source line (e.g. a GRN line drawing down a purchase
// order line).
type VoucherLineInput struct {
	ProductID      uuid.UUID            `json:"product_id"`
	Description    string               `json:"description"`
	HSNCode        string               `json:"hsn_code"`
	Quantity       voucher.FlexDecimal  `json:"quantity"`
	Unit           string               `json:"unit"`
	UnitPrice      voucher.FlexDecimal  `json:"unit_price"`
	TaxRatePercent voucher.FlexDecimal  `json:"tax_rate_percent"`
	DiscountType   *domain.DiscountType `json:"discount_type,omitempty"`
	DiscountValue  voucher.FlexDecimal  `json:"discount_value"`
	SourceLineID   *uuid.UUID           `json:"source_line_id,omitempty"`
}

// CreateVoucherInput is the DTO for creating a voucher.
type CreateVoucherInput struct {
	PartyID       uuid.UUID            `json:"party_id" binding:"required"`
	Type          domain.VoucherType   `json:"voucher_type" binding:"required"`
	Number        string               `json:"number" binding:"required"`
	VoucherDate   time.Time            `json:"voucher_date" binding:"required"`
	DiscountType  *domain.DiscountType `json:"discount_type,omitempty"`
	DiscountValue voucher.FlexDecimal  `json:"discount_value"`
	Notes         string               `json:"notes"`
	Lines         []VoucherLineInput   `json:"lines" binding:"required,min=1"`
}

// PreviewInput is the DTO for a computation preview; it carries the same
// financial fields as CreateVoucherInput without the document identity.
type PreviewInput struct {
	PartyID       uuid.UUID            `json:"party_id" binding:"required"`
	DiscountType  *domain.DiscountType `json:"discount_type,omitempty"`
	DiscountValue voucher.FlexDecimal  `json:"discount_value"`
	Lines         []VoucherLineInput   `json:"lines" binding:"required,min=1"`
}

// AttachReferenceInput is the DTO for attaching a standalone reference link.
type AttachReferenceInput struct {
	SourceLineID uuid.UUID           `json:"source_line_id" binding:"required"`
	VoucherID    uuid.UUID           `json:"voucher_id" binding:"required"`
	Quantity     voucher.FlexDecimal `json:"quantity" binding:"required"`
}

// VoucherResult pairs a voucher with the non-fatal warnings produced while
// computing it.
type VoucherResult struct {
	Voucher  *domain.Voucher   `json:"voucher"`
	Warnings []voucher.Warning `json:"warnings,omitempty"`
}

// PreviewResult is the output of a pure computation preview.
type PreviewResult struct {
	Totals   *voucher.ComputedTotals `json:"totals"`
	Warnings []voucher.Warning       `json:"warnings,omitempty"`
}

// VoucherDetail pairs a stored voucher with the reconciliation issues found
// when re-checking its totals on load. Issues indicate corrupted stored data
// and are surfaced for audit, not treated as request failures.
type VoucherDetail struct {
	Voucher         *domain.Voucher           `json:"voucher"`
	ReconcileIssues []voucher.ReconcileIssue  `json:"reconcile_issues,omitempty"`
}

// RemainingQuantityResult reports the consumable remainder of a source line.
type RemainingQuantityResult struct {
	SourceLineID      uuid.UUID                `json:"source_line_id"`
	OriginalQuantity  decimal.Decimal          `json:"original_quantity"`
	ConsumedQuantity  decimal.Decimal          `json:"consumed_quantity"`
	RemainingQuantity decimal.Decimal          `json:"remaining_quantity"`
	Status            domain.ConsumptionStatus `json:"status"`
}

// VoucherService defines the voucher lifecycle contract.
type VoucherService interface {
	Preview(ctx context.Context, tenantID uuid.UUID, input PreviewInput) (*PreviewResult, error)
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateVoucherInput) (*VoucherResult, error)
	GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*VoucherDetail, error)
	List(ctx context.Context, tenantID uuid.UUID, voucherType *domain.VoucherType, offset, limit int) ([]domain.Voucher, int, error)
	Cancel(ctx context.Context, tenantID, voucherID uuid.UUID) error
	AttachReference(ctx context.Context, tenantID uuid.UUID, input AttachReferenceInput) (*domain.ReferenceLink, error)
	ReleaseReference(ctx context.Context, tenantID, linkID uuid.UUID) error
	RemainingQuantity(ctx context.Context, tenantID, sourceLineID uuid.UUID) (*RemainingQuantityResult, error)
}

type voucherService struct {
	voucherRepo port.VoucherRepository
	partyRepo   port.PartyRepository
	tenantRepo  port.TenantRepository
	refRepo     port.ReferenceRepository
	emailSender port.EmailSender
}

// NewVoucherService creates a new VoucherService implementation.
func NewVoucherService(
	voucherRepo port.VoucherRepository,
	partyRepo port.PartyRepository,
	tenantRepo port.TenantRepository,
	refRepo port.ReferenceRepository,
	emailSender port.EmailSender,
) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		partyRepo:   partyRepo,
		tenantRepo:  tenantRepo,
		refRepo:     refRepo,
		emailSender: emailSender,
	}
}

func (s *voucherService) Preview(ctx context.Context, tenantID uuid.UUID, input PreviewInput) (*PreviewResult, error) {
	computeInput, err := s.buildComputeInput(ctx, tenantID, input.PartyID, input.Lines, input.DiscountType, input.DiscountValue.Decimal)
	if err != nil {
		return nil, err
	}
	totals, warnings := voucher.Compute(*computeInput)
	return &PreviewResult{Totals: totals, Warnings: warnings}, nil
}

func (s *voucherService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateVoucherInput) (*VoucherResult, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidVoucherType
	}
	if input.DiscountType != nil && !input.DiscountType.IsValid() {
		return nil, domain.ErrInvalidDiscount
	}

	computeInput, err := s.buildComputeInput(ctx, tenantID, input.PartyID, input.Lines, input.DiscountType, input.DiscountValue.Decimal)
	if err != nil {
		return nil, err
	}
	totals, warnings := voucher.Compute(*computeInput)

	v := &domain.Voucher{
		ID:                  uuid.New(),
		TenantID:            tenantID,
		PartyID:             input.PartyID,
		Type:                input.Type,
		Status:              domain.VoucherStatusIssued,
		Number:              input.Number,
		VoucherDate:         input.VoucherDate,
		DiscountType:        input.DiscountType,
		DiscountValue:       input.DiscountValue.Decimal,
		Subtotal:            totals.Subtotal,
		TotalDiscount:       totals.TotalDiscount,
		TaxableAmount:       totals.TaxableAmount,
		CGST:                totals.CGST,
		SGST:                totals.SGST,
		IGST:                totals.IGST,
		RoundOff:            totals.RoundOff,
		GrandTotal:          totals.GrandTotal,
		Intrastate:          totals.Jurisdiction.Intrastate,
		JurisdictionAssumed: totals.Jurisdiction.Assumed,
		Notes:               input.Notes,
		CreatedBy:           userID,
		Lines:               buildDomainLines(input.Lines, totals),
	}

	// Draw down source lines before persisting; a failed draw-down must
	// abort the save so the user can re-enter the quantity.
	attached, err := s.attachLineReferences(ctx, tenantID, v, input.Lines)
	if err != nil {
		return nil, err
	}

	if err := s.voucherRepo.Create(ctx, v); err != nil {
		s.releaseLinks(ctx, tenantID, attached)
		return nil, err
	}

	s.notifyPartyIssued(ctx, tenantID, v)

	return &VoucherResult{Voucher: v, Warnings: warnings}, nil
}

func (s *voucherService) GetByID(ctx context.Context, tenantID, voucherID uuid.UUID) (*VoucherDetail, error) {
	v, err := s.voucherRepo.GetByID(ctx, tenantID, voucherID)
	if err != nil {
		return nil, err
	}
	issues := voucher.Reconcile(storedTotals(v))
	if len(issues) > 0 {
		log.Printf("voucher %s failed reconciliation: %d issue(s)", v.ID, len(issues))
	}
	return &VoucherDetail{Voucher: v, ReconcileIssues: issues}, nil
}

func (s *voucherService) List(ctx context.Context, tenantID uuid.UUID, voucherType *domain.VoucherType, offset, limit int) ([]domain.Voucher, int, error) {
	return s.voucherRepo.ListByTenant(ctx, tenantID, voucherType, offset, limit)
}

func (s *voucherService) Cancel(ctx context.Context, tenantID, voucherID uuid.UUID) error {
	v, err := s.voucherRepo.GetByID(ctx, tenantID, voucherID)
	if err != nil {
		return err
	}
	if v.Status == domain.VoucherStatusCancelled {
		return domain.ErrVoucherCancelled
	}
	for i := range v.Lines {
		if v.Lines[i].ConsumedQuantity.IsPositive() {
			return domain.ErrSourceConsumed
		}
	}
	if err := s.refRepo.ReleaseByVoucher(ctx, tenantID, voucherID); err != nil {
		return err
	}
	return s.voucherRepo.SetStatus(ctx, tenantID, voucherID, domain.VoucherStatusCancelled)
}

func (s *voucherService) AttachReference(ctx context.Context, tenantID uuid.UUID, input AttachReferenceInput) (*domain.ReferenceLink, error) {
	if !input.Quantity.Decimal.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	sourceLine, err := s.voucherRepo.GetLine(ctx, tenantID, input.SourceLineID)
	if err != nil {
		return nil, err
	}
	source, err := s.voucherRepo.GetByID(ctx, tenantID, sourceLine.VoucherID)
	if err != nil {
		return nil, err
	}
	if !source.Type.CanBeReferenced() || source.Status != domain.VoucherStatusIssued {
		return nil, domain.ErrInvalidReference
	}

	link := &domain.ReferenceLink{
		TenantID:         tenantID,
		SourceType:       source.Type,
		SourceID:         source.ID,
		SourceLineID:     input.SourceLineID,
		VoucherID:        input.VoucherID,
		ConsumedQuantity: input.Quantity.Decimal,
	}
	if err := s.refRepo.Attach(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *voucherService) ReleaseReference(ctx context.Context, tenantID, linkID uuid.UUID) error {
	return s.refRepo.Release(ctx, tenantID, linkID)
}

func (s *voucherService) RemainingQuantity(ctx context.Context, tenantID, sourceLineID uuid.UUID) (*RemainingQuantityResult, error) {
	line, err := s.voucherRepo.GetLine(ctx, tenantID, sourceLineID)
	if err != nil {
		return nil, err
	}
	return &RemainingQuantityResult{
		SourceLineID:      line.ID,
		OriginalQuantity:  line.Quantity,
		ConsumedQuantity:  line.ConsumedQuantity,
		RemainingQuantity: line.RemainingQuantity(),
		Status:            line.ConsumptionStatus,
	}, nil
}

// buildComputeInput assembles the engine input from line DTOs and the
// jurisdiction master data of the tenant and counterparty.
func (s *voucherService) buildComputeInput(
	ctx context.Context,
	tenantID, partyID uuid.UUID,
	lines []VoucherLineInput,
	discountType *domain.DiscountType,
	discountValue decimal.Decimal,
) (*voucher.ComputeInput, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	party, err := s.partyRepo.GetByID(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}

	engineLines := make([]voucher.LineItem, len(lines))
	for i, l := range lines {
		item := voucher.LineItem{
			ProductID:      l.ProductID,
			Description:    l.Description,
			HSNCode:        l.HSNCode,
			Quantity:       l.Quantity.Decimal,
			Unit:           l.Unit,
			UnitPrice:      l.UnitPrice.Decimal,
			TaxRatePercent: l.TaxRatePercent.Decimal,
		}
		if l.DiscountType != nil {
			if !l.DiscountType.IsValid() {
				return nil, domain.ErrInvalidDiscount
			}
			item.Discount = &voucher.DiscountSpec{Type: *l.DiscountType, Value: l.DiscountValue.Decimal}
		}
		engineLines[i] = item
	}

	input := &voucher.ComputeInput{
		Lines: engineLines,
		Jurisdiction: voucher.JurisdictionContext{
			TenantStateCode:       tenant.StateCode,
			CounterpartyStateCode: party.StateCode,
			CounterpartyGSTIN:     party.GSTIN,
		},
	}
	if discountType != nil {
		input.DocumentDiscount = &voucher.DiscountSpec{Type: *discountType, Value: discountValue}
	}
	return input, nil
}

// attachLineReferences draws down every source line referenced by the input
// lines. On any failure the already-attached links are released so the
// ledger is left unchanged, per the no-partial-consumption contract.
func (s *voucherService) attachLineReferences(ctx context.Context, tenantID uuid.UUID, v *domain.Voucher, lines []VoucherLineInput) ([]domain.ReferenceLink, error) {
	var attached []domain.ReferenceLink
	for _, l := range lines {
		if l.SourceLineID == nil {
			continue
		}
		link, err := s.AttachReference(ctx, tenantID, AttachReferenceInput{
			SourceLineID: *l.SourceLineID,
			VoucherID:    v.ID,
			Quantity:     l.Quantity,
		})
		if err != nil {
			s.releaseLinks(ctx, tenantID, attached)
			return nil, err
		}
		attached = append(attached, *link)
	}
	return attached, nil
}

func (s *voucherService) releaseLinks(ctx context.Context, tenantID uuid.UUID, links []domain.ReferenceLink) {
	for _, link := range links {
		if err := s.refRepo.Release(ctx, tenantID, link.ID); err != nil {
			log.Printf("failed to release reference link %s during rollback: %v", link.ID, err)
		}
	}
}

// notifyPartyIssued sends the voucher notification email. Delivery failures
// are logged, not returned; the voucher is already saved.
func (s *voucherService) notifyPartyIssued(ctx context.Context, tenantID uuid.UUID, v *domain.Voucher) {
	if s.emailSender == nil {
		return
	}
	party, err := s.partyRepo.GetByID(ctx, tenantID, v.PartyID)
	if err != nil || party.Email == "" {
		return
	}
	err = s.emailSender.SendVoucherIssuedEmail(ctx, port.VoucherEmail{
		ToEmail:       party.Email,
		ToName:        party.Name,
		VoucherNumber: v.Number,
		VoucherType:   string(v.Type),
		GrandTotal:    v.GrandTotal.StringFixed(2),
	})
	if err != nil {
		log.Printf("failed to send voucher email for %s: %v", v.ID, err)
	}
}

// buildDomainLines merges line inputs with engine output into persistable rows.
func buildDomainLines(inputs []VoucherLineInput, totals *voucher.ComputedTotals) []domain.VoucherLine {
	lines := make([]domain.VoucherLine, len(inputs))
	for i, in := range inputs {
		lc := totals.Lines[i]
		lines[i] = domain.VoucherLine{
			Position:          i,
			ProductID:         in.ProductID,
			Description:       in.Description,
			HSNCode:           in.HSNCode,
			Quantity:          in.Quantity.Decimal,
			Unit:              in.Unit,
			UnitPrice:         in.UnitPrice.Decimal,
			TaxRatePercent:    in.TaxRatePercent.Decimal,
			DiscountType:      in.DiscountType,
			DiscountValue:     in.DiscountValue.Decimal,
			TaxableAmount:     lc.TaxableAmount,
			CGSTAmount:        lc.CGST,
			SGSTAmount:        lc.SGST,
			IGSTAmount:        lc.IGST,
			LineTotal:         lc.LineTotal,
			ConsumedQuantity:  decimal.Zero,
			ConsumptionStatus: domain.ConsumptionAvailable,
		}
	}
	return lines
}

// storedTotals reconstructs a ComputedTotals aggregate from persisted voucher
// rows so the reconciliation rules can re-check them.
func storedTotals(v *domain.Voucher) *voucher.ComputedTotals {
	totals := &voucher.ComputedTotals{
		Subtotal:      v.Subtotal,
		TotalDiscount: v.TotalDiscount,
		TaxableAmount: v.TaxableAmount,
		CGST:          v.CGST,
		SGST:          v.SGST,
		IGST:          v.IGST,
		RoundOff:      v.RoundOff,
		GrandTotal:    v.GrandTotal,
		Jurisdiction:  voucher.Jurisdiction{Intrastate: v.Intrastate, Assumed: v.JurisdictionAssumed},
		GSTBreakdown:  make(map[string]voucher.RateBucket),
		Lines:         make([]voucher.LineComputation, len(v.Lines)),
	}
	for i, l := range v.Lines {
		totals.Lines[i] = voucher.LineComputation{
			GrossAmount:    l.Quantity.Mul(l.UnitPrice),
			TaxableAmount:  l.TaxableAmount,
			TaxRatePercent: l.TaxRatePercent,
			CGST:           l.CGSTAmount,
			SGST:           l.SGSTAmount,
			IGST:           l.IGSTAmount,
			LineTotal:      l.LineTotal,
		}
	}
	return totals
}
