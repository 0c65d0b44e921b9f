package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"opsuite/internal/domain"
	"opsuite/internal/port"
	"opsuite/internal/xlsxexport"
)

// ExportResult is the output of a register export. URL is set only when the
// workbook was uploaded to object storage.
type ExportResult struct {
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
	Content  []byte `json:"-"`
}

// ReportService defines the reporting contract.
type ReportService interface {
	TaxSummary(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.TaxSummaryRow, error)
	VoucherRegister(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.Voucher, error)
	ExportRegister(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters, upload bool) (*ExportResult, error)
}

type reportService struct {
	reportRepo    port.ReportRepository
	storage       port.ObjectStorage
	bucket        string
	presignExpiry int64
}

// NewReportService creates a new ReportService implementation. storage may be
// nil when no object store is configured; exports are then returned inline.
// presignExpiry is the download URL lifetime in seconds.
func NewReportService(reportRepo port.ReportRepository, storage port.ObjectStorage, bucket string, presignExpiry int64) ReportService {
	return &reportService{reportRepo: reportRepo, storage: storage, bucket: bucket, presignExpiry: presignExpiry}
}

func (s *reportService) TaxSummary(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.TaxSummaryRow, error) {
	return s.reportRepo.TaxSummary(ctx, tenantID, filters)
}

func (s *reportService) VoucherRegister(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters) ([]domain.Voucher, error) {
	return s.reportRepo.VoucherRegister(ctx, tenantID, filters)
}

func (s *reportService) ExportRegister(ctx context.Context, tenantID uuid.UUID, filters domain.ReportFilters, upload bool) (*ExportResult, error) {
	vouchers, err := s.reportRepo.VoucherRegister(ctx, tenantID, filters)
	if err != nil {
		return nil, err
	}
	summary, err := s.reportRepo.TaxSummary(ctx, tenantID, filters)
	if err != nil {
		return nil, err
	}

	content, err := xlsxexport.WriteVoucherRegister(vouchers, summary)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	result := &ExportResult{
		FileName: fmt.Sprintf("voucher-register-%s.xlsx", time.Now().UTC().Format("20060102-150405")),
		Content:  content,
	}
	if !upload || s.storage == nil {
		return result, nil
	}

	key := fmt.Sprintf("exports/%s/%s", tenantID, result.FileName)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(content),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Size:        int64(len(content)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	result.URL = url
	return result, nil
}
