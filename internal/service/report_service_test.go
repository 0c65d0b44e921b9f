package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"opsuite/internal/domain"
	"opsuite/internal/port"
	"opsuite/internal/service"
	"opsuite/mocks"
)

func registerFixture() []domain.Voucher {
	return []domain.Voucher{{
		ID:            uuid.New(),
		PartyID:       uuid.New(),
		Type:          domain.VoucherTypeSalesInvoice,
		Number:        "INV-001",
		VoucherDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Subtotal:      dec("1000"),
		TaxableAmount: dec("1000"),
		CGST:          dec("90"),
		SGST:          dec("90"),
		GrandTotal:    dec("1180"),
	}}
}

func summaryFixture() []domain.TaxSummaryRow {
	return []domain.TaxSummaryRow{{
		TaxRatePercent: dec("18"),
		TaxableAmount:  dec("1000"),
		CGST:           dec("90"),
		SGST:           dec("90"),
		VoucherCount:   1,
	}}
}

func TestReportService_TaxSummary(t *testing.T) {
	repo := new(mocks.MockReportRepo)
	svc := service.NewReportService(repo, nil, "", 900)
	tenantID := uuid.New()

	repo.On("TaxSummary", mock.Anything, tenantID, mock.Anything).Return(summaryFixture(), nil)

	rows, err := svc.TaxSummary(context.Background(), tenantID, domain.ReportFilters{})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, dec("18").Equal(rows[0].TaxRatePercent))
}

func TestReportService_ExportRegister_Inline(t *testing.T) {
	repo := new(mocks.MockReportRepo)
	svc := service.NewReportService(repo, nil, "", 900)
	tenantID := uuid.New()

	repo.On("VoucherRegister", mock.Anything, tenantID, mock.Anything).Return(registerFixture(), nil)
	repo.On("TaxSummary", mock.Anything, tenantID, mock.Anything).Return(summaryFixture(), nil)

	result, err := svc.ExportRegister(context.Background(), tenantID, domain.ReportFilters{}, false)

	require.NoError(t, err)
	assert.NotEmpty(t, result.Content)
	assert.Contains(t, result.FileName, "voucher-register-")
	assert.Empty(t, result.URL)
}

func TestReportService_ExportRegister_UploadsAndPresigns(t *testing.T) {
	repo := new(mocks.MockReportRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(repo, storage, "exports-bucket", 900)
	tenantID := uuid.New()

	repo.On("VoucherRegister", mock.Anything, tenantID, mock.Anything).Return(registerFixture(), nil)
	repo.On("TaxSummary", mock.Anything, tenantID, mock.Anything).Return(summaryFixture(), nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "exports-bucket" && in.Size > 0
	})).Return(&port.UploadOutput{Location: "s3://exports-bucket/key"}, nil)
	storage.On("GetPresignedURL", mock.Anything, "exports-bucket", mock.Anything, int64(900)).
		Return("https://example.com/presigned", nil)

	result, err := svc.ExportRegister(context.Background(), tenantID, domain.ReportFilters{}, true)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/presigned", result.URL)
	storage.AssertExpectations(t)
}

func TestReportService_ExportRegister_UploadFailure(t *testing.T) {
	repo := new(mocks.MockReportRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(repo, storage, "exports-bucket", 900)
	tenantID := uuid.New()

	repo.On("VoucherRegister", mock.Anything, tenantID, mock.Anything).Return(registerFixture(), nil)
	repo.On("TaxSummary", mock.Anything, tenantID, mock.Anything).Return(summaryFixture(), nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	_, err := svc.ExportRegister(context.Background(), tenantID, domain.ReportFilters{}, true)

	assert.ErrorIs(t, err, domain.ErrExportFailed)
}
