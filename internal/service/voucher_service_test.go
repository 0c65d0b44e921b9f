package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"opsuite/internal/domain"
	"opsuite/internal/service"
	"opsuite/internal/voucher"
	"opsuite/mocks"
)

type voucherServiceMocks struct {
	voucherRepo *mocks.MockVoucherRepo
	partyRepo   *mocks.MockPartyRepo
	tenantRepo  *mocks.MockTenantRepo
	refRepo     *mocks.MockReferenceRepo
	emailSender *mocks.MockEmailSender
}

func newVoucherService() (service.VoucherService, *voucherServiceMocks) {
	m := &voucherServiceMocks{
		voucherRepo: new(mocks.MockVoucherRepo),
		partyRepo:   new(mocks.MockPartyRepo),
		tenantRepo:  new(mocks.MockTenantRepo),
		refRepo:     new(mocks.MockReferenceRepo),
		emailSender: new(mocks.MockEmailSender),
	}
	svc := service.NewVoucherService(m.voucherRepo, m.partyRepo, m.tenantRepo, m.refRepo, m.emailSender)
	return svc, m
}

func fd(s string) voucher.FlexDecimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return voucher.FlexDecimal{Decimal: v}
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestVoucherService_Create_IntrastateInvoice(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, userID, partyID := uuid.New(), uuid.New(), uuid.New()

	m.tenantRepo.On("GetByID", mock.Anything, tenantID).
		Return(&domain.Tenant{ID: tenantID, StateCode: "27"}, nil)
	m.partyRepo.On("GetByID", mock.Anything, tenantID, partyID).
		Return(&domain.Party{ID: partyID, StateCode: "27", Name: "Acme", Email: "billing@acme.example"}, nil)
	m.voucherRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Voucher")).Return(nil)
	m.emailSender.On("SendVoucherIssuedEmail", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Create(context.Background(), tenantID, userID, service.CreateVoucherInput{
		PartyID:     partyID,
		Type:        domain.VoucherTypeSalesInvoice,
		Number:      "INV-001",
		VoucherDate: time.Now(),
		Lines: []service.VoucherLineInput{
			{Quantity: fd("10"), UnitPrice: fd("100"), TaxRatePercent: fd("18")},
		},
	})

	require.NoError(t, err)
	v := result.Voucher
	assert.True(t, dec("1000").Equal(v.Subtotal))
	assert.True(t, dec("90").Equal(v.CGST))
	assert.True(t, dec("90").Equal(v.SGST))
	assert.True(t, v.IGST.IsZero())
	assert.True(t, dec("1180").Equal(v.GrandTotal))
	assert.True(t, v.Intrastate)
	assert.Equal(t, domain.VoucherStatusIssued, v.Status)
	require.Len(t, v.Lines, 1)
	assert.True(t, dec("1180").Equal(v.Lines[0].LineTotal))

	m.voucherRepo.AssertExpectations(t)
	m.emailSender.AssertExpectations(t)
}

func TestVoucherService_Create_InvalidType(t *testing.T) {
	svc, m := newVoucherService()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateVoucherInput{
		PartyID: uuid.New(),
		Type:    domain.VoucherType("journal"),
		Number:  "X-1",
		Lines:   []service.VoucherLineInput{{Quantity: fd("1"), UnitPrice: fd("1")}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidVoucherType)
	m.voucherRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoucherService_Create_InvalidDiscountType(t *testing.T) {
	svc, _ := newVoucherService()
	bad := domain.DiscountType("flat")

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), service.CreateVoucherInput{
		PartyID:      uuid.New(),
		Type:         domain.VoucherTypeSalesInvoice,
		Number:       "INV-002",
		DiscountType: &bad,
		Lines:        []service.VoucherLineInput{{Quantity: fd("1"), UnitPrice: fd("1")}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
}

func TestVoucherService_Create_AttachesSourceLine(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, userID, partyID := uuid.New(), uuid.New(), uuid.New()
	sourceVoucherID, sourceLineID := uuid.New(), uuid.New()

	m.tenantRepo.On("GetByID", mock.Anything, tenantID).
		Return(&domain.Tenant{ID: tenantID, StateCode: "27"}, nil)
	m.partyRepo.On("GetByID", mock.Anything, tenantID, partyID).
		Return(&domain.Party{ID: partyID, StateCode: "27"}, nil)
	m.voucherRepo.On("GetLine", mock.Anything, tenantID, sourceLineID).
		Return(&domain.VoucherLine{ID: sourceLineID, VoucherID: sourceVoucherID, Quantity: dec("10")}, nil)
	m.voucherRepo.On("GetByID", mock.Anything, tenantID, sourceVoucherID).
		Return(&domain.Voucher{ID: sourceVoucherID, Type: domain.VoucherTypePurchaseOrder, Status: domain.VoucherStatusIssued}, nil)
	m.refRepo.On("Attach", mock.Anything, mock.AnythingOfType("*domain.ReferenceLink")).Return(nil)
	m.voucherRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Voucher")).Return(nil)

	result, err := svc.Create(context.Background(), tenantID, userID, service.CreateVoucherInput{
		PartyID:     partyID,
		Type:        domain.VoucherTypeGRN,
		Number:      "GRN-001",
		VoucherDate: time.Now(),
		Lines: []service.VoucherLineInput{
			{Quantity: fd("6"), UnitPrice: fd("100"), TaxRatePercent: fd("18"), SourceLineID: &sourceLineID},
		},
	})

	require.NoError(t, err)
	assert.NotNil(t, result.Voucher)
	m.refRepo.AssertCalled(t, "Attach", mock.Anything, mock.MatchedBy(func(link *domain.ReferenceLink) bool {
		return link.SourceLineID == sourceLineID && link.ConsumedQuantity.Equal(dec("6"))
	}))
}

func TestVoucherService_Create_InsufficientQuantityAbortsSave(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, partyID := uuid.New(), uuid.New()
	sourceVoucherID, sourceLineID := uuid.New(), uuid.New()

	m.tenantRepo.On("GetByID", mock.Anything, tenantID).
		Return(&domain.Tenant{ID: tenantID, StateCode: "27"}, nil)
	m.partyRepo.On("GetByID", mock.Anything, tenantID, partyID).
		Return(&domain.Party{ID: partyID, StateCode: "27"}, nil)
	m.voucherRepo.On("GetLine", mock.Anything, tenantID, sourceLineID).
		Return(&domain.VoucherLine{ID: sourceLineID, VoucherID: sourceVoucherID, Quantity: dec("10")}, nil)
	m.voucherRepo.On("GetByID", mock.Anything, tenantID, sourceVoucherID).
		Return(&domain.Voucher{ID: sourceVoucherID, Type: domain.VoucherTypePurchaseOrder, Status: domain.VoucherStatusIssued}, nil)
	m.refRepo.On("Attach", mock.Anything, mock.Anything).Return(domain.ErrInsufficientQuantity)

	_, err := svc.Create(context.Background(), tenantID, uuid.New(), service.CreateVoucherInput{
		PartyID:     partyID,
		Type:        domain.VoucherTypeGRN,
		Number:      "GRN-002",
		VoucherDate: time.Now(),
		Lines: []service.VoucherLineInput{
			{Quantity: fd("12"), UnitPrice: fd("100"), TaxRatePercent: fd("18"), SourceLineID: &sourceLineID},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
	m.voucherRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoucherService_Preview_DoesNotPersist(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, partyID := uuid.New(), uuid.New()

	m.tenantRepo.On("GetByID", mock.Anything, tenantID).
		Return(&domain.Tenant{ID: tenantID, StateCode: "27"}, nil)
	m.partyRepo.On("GetByID", mock.Anything, tenantID, partyID).
		Return(&domain.Party{ID: partyID, StateCode: "29"}, nil)

	result, err := svc.Preview(context.Background(), tenantID, service.PreviewInput{
		PartyID: partyID,
		Lines: []service.VoucherLineInput{
			{Quantity: fd("10"), UnitPrice: fd("100"), TaxRatePercent: fd("18")},
		},
	})

	require.NoError(t, err)
	assert.True(t, dec("180").Equal(result.Totals.IGST))
	assert.False(t, result.Totals.Jurisdiction.Intrastate)
	m.voucherRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestVoucherService_Cancel_ReleasesReferences(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, voucherID := uuid.New(), uuid.New()

	m.voucherRepo.On("GetByID", mock.Anything, tenantID, voucherID).
		Return(&domain.Voucher{ID: voucherID, Status: domain.VoucherStatusIssued}, nil)
	m.refRepo.On("ReleaseByVoucher", mock.Anything, tenantID, voucherID).Return(nil)
	m.voucherRepo.On("SetStatus", mock.Anything, tenantID, voucherID, domain.VoucherStatusCancelled).Return(nil)

	err := svc.Cancel(context.Background(), tenantID, voucherID)

	assert.NoError(t, err)
	m.refRepo.AssertExpectations(t)
	m.voucherRepo.AssertExpectations(t)
}

func TestVoucherService_Cancel_AlreadyCancelled(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, voucherID := uuid.New(), uuid.New()

	m.voucherRepo.On("GetByID", mock.Anything, tenantID, voucherID).
		Return(&domain.Voucher{ID: voucherID, Status: domain.VoucherStatusCancelled}, nil)

	err := svc.Cancel(context.Background(), tenantID, voucherID)

	assert.ErrorIs(t, err, domain.ErrVoucherCancelled)
	m.refRepo.AssertNotCalled(t, "ReleaseByVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherService_Cancel_BlockedWhenSourceConsumed(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, voucherID := uuid.New(), uuid.New()

	m.voucherRepo.On("GetByID", mock.Anything, tenantID, voucherID).
		Return(&domain.Voucher{
			ID:     voucherID,
			Status: domain.VoucherStatusIssued,
			Lines: []domain.VoucherLine{
				{Quantity: dec("10"), ConsumedQuantity: dec("4")},
			},
		}, nil)

	err := svc.Cancel(context.Background(), tenantID, voucherID)

	assert.ErrorIs(t, err, domain.ErrSourceConsumed)
	m.voucherRepo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVoucherService_AttachReference_RejectsNonReferenceableSource(t *testing.T) {
	svc, m := newVoucherService()
	tenantID := uuid.New()
	sourceVoucherID, sourceLineID := uuid.New(), uuid.New()

	m.voucherRepo.On("GetLine", mock.Anything, tenantID, sourceLineID).
		Return(&domain.VoucherLine{ID: sourceLineID, VoucherID: sourceVoucherID, Quantity: dec("10")}, nil)
	m.voucherRepo.On("GetByID", mock.Anything, tenantID, sourceVoucherID).
		Return(&domain.Voucher{ID: sourceVoucherID, Type: domain.VoucherTypeSalesInvoice, Status: domain.VoucherStatusIssued}, nil)

	_, err := svc.AttachReference(context.Background(), tenantID, service.AttachReferenceInput{
		SourceLineID: sourceLineID,
		VoucherID:    uuid.New(),
		Quantity:     fd("5"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	m.refRepo.AssertNotCalled(t, "Attach", mock.Anything, mock.Anything)
}

func TestVoucherService_AttachReference_RejectsZeroQuantity(t *testing.T) {
	svc, _ := newVoucherService()

	_, err := svc.AttachReference(context.Background(), uuid.New(), service.AttachReferenceInput{
		SourceLineID: uuid.New(),
		VoucherID:    uuid.New(),
		Quantity:     fd("0"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestVoucherService_RemainingQuantity(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, lineID := uuid.New(), uuid.New()

	m.voucherRepo.On("GetLine", mock.Anything, tenantID, lineID).
		Return(&domain.VoucherLine{
			ID:                lineID,
			Quantity:          dec("10"),
			ConsumedQuantity:  dec("4"),
			ConsumptionStatus: domain.ConsumptionPartiallyConsumed,
		}, nil)

	result, err := svc.RemainingQuantity(context.Background(), tenantID, lineID)

	require.NoError(t, err)
	assert.True(t, dec("6").Equal(result.RemainingQuantity))
	assert.Equal(t, domain.ConsumptionPartiallyConsumed, result.Status)
}

func TestVoucherService_GetByID_ReconcilesStoredTotals(t *testing.T) {
	svc, m := newVoucherService()
	tenantID, voucherID := uuid.New(), uuid.New()

	// Stored totals disagree with the line sums; GetByID surfaces issues.
	m.voucherRepo.On("GetByID", mock.Anything, tenantID, voucherID).
		Return(&domain.Voucher{
			ID:            voucherID,
			Status:        domain.VoucherStatusIssued,
			Subtotal:      dec("1000"),
			TaxableAmount: dec("1000"),
			CGST:          dec("90"),
			SGST:          dec("90"),
			GrandTotal:    dec("9999"),
			Intrastate:    true,
			Lines: []domain.VoucherLine{{
				Quantity:      dec("10"),
				UnitPrice:     dec("100"),
				TaxableAmount: dec("1000"),
				CGSTAmount:    dec("90"),
				SGSTAmount:    dec("90"),
				LineTotal:     dec("1180"),
			}},
		}, nil)

	detail, err := svc.GetByID(context.Background(), tenantID, voucherID)

	require.NoError(t, err)
	assert.NotEmpty(t, detail.ReconcileIssues)
}
