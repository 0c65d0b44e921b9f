// Package xlsxexport renders report rows into spreadsheet workbooks.
package xlsxexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"opsuite/internal/domain"
)

const (
	registerSheet = "Voucher Register"
	summarySheet  = "Tax Summary"
)

var registerHeaders = []string{
	"Number", "Date", "Type", "Party ID", "Subtotal", "Discount",
	"Taxable", "CGST", "SGST", "IGST", "Round Off", "Grand Total",
}

var summaryHeaders = []string{
	"Rate %", "Taxable", "CGST", "SGST", "IGST", "Vouchers",
}

// WriteVoucherRegister builds a workbook with the voucher register and the
// per-rate tax summary, returning the serialized xlsx bytes.
func WriteVoucherRegister(vouchers []domain.Voucher, summary []domain.TaxSummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName(f.GetSheetName(0), registerSheet)
	if err := writeHeaderRow(f, registerSheet, registerHeaders); err != nil {
		return nil, err
	}
	for i, v := range vouchers {
		row := i + 2
		cells := []interface{}{
			v.Number,
			v.VoucherDate.Format("2006-01-02"),
			string(v.Type),
			v.PartyID.String(),
			v.Subtotal.StringFixed(2),
			v.TotalDiscount.StringFixed(2),
			v.TaxableAmount.StringFixed(2),
			v.CGST.StringFixed(2),
			v.SGST.StringFixed(2),
			v.IGST.StringFixed(2),
			v.RoundOff.StringFixed(2),
			v.GrandTotal.StringFixed(2),
		}
		if err := writeRow(f, registerSheet, row, cells); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("xlsxexport: add summary sheet: %w", err)
	}
	if err := writeHeaderRow(f, summarySheet, summaryHeaders); err != nil {
		return nil, err
	}
	for i, s := range summary {
		row := i + 2
		cells := []interface{}{
			s.TaxRatePercent.StringFixed(2),
			s.TaxableAmount.StringFixed(2),
			s.CGST.StringFixed(2),
			s.SGST.StringFixed(2),
			s.IGST.StringFixed(2),
			s.VoucherCount,
		}
		if err := writeRow(f, summarySheet, row, cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsxexport: serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return writeRow(f, sheet, 1, cells)
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsxexport: cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("xlsxexport: write row %d: %w", row, err)
	}
	return nil
}
