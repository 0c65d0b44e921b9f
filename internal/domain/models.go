package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated organizational tenant.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	StateCode string    `db:"state_code" json:"state_code"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Party represents a counterparty master record (customer or vendor).
// StateCode may be empty; in that case the jurisdiction is derived from the
// first two characters of the GSTIN, if present.
type Party struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Kind      PartyKind `db:"kind" json:"kind"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	StateCode string    `db:"state_code" json:"state_code"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Voucher represents a financial document with its persisted totals.
// Totals are always recomputed by the engine before persistence; they are
// never patched in place.
type Voucher struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	TenantID            uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	PartyID             uuid.UUID       `db:"party_id" json:"party_id"`
	Type                VoucherType     `db:"voucher_type" json:"voucher_type"`
	Status              VoucherStatus   `db:"status" json:"status"`
	Number              string          `db:"number" json:"number"`
	VoucherDate         time.Time       `db:"voucher_date" json:"voucher_date"`
	DiscountType        *DiscountType   `db:"discount_type" json:"discount_type,omitempty"`
	DiscountValue       decimal.Decimal `db:"discount_value" json:"discount_value"`
	Subtotal            decimal.Decimal `db:"subtotal" json:"subtotal"`
	TotalDiscount       decimal.Decimal `db:"total_discount" json:"total_discount"`
	TaxableAmount       decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGST                decimal.Decimal `db:"cgst" json:"cgst"`
	SGST                decimal.Decimal `db:"sgst" json:"sgst"`
	IGST                decimal.Decimal `db:"igst" json:"igst"`
	RoundOff            decimal.Decimal `db:"round_off" json:"round_off"`
	GrandTotal          decimal.Decimal `db:"grand_total" json:"grand_total"`
	Intrastate          bool            `db:"intrastate" json:"intrastate"`
	JurisdictionAssumed bool            `db:"jurisdiction_assumed" json:"jurisdiction_assumed"`
	Notes               string          `db:"notes" json:"notes"`
	CreatedBy           uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`

	Lines []VoucherLine `db:"-" json:"lines,omitempty"`
}

// VoucherLine is one row of a voucher. The computed columns (taxable amount,
// tax components, line total) are engine output stored for display and audit.
// ConsumedQuantity and ConsumptionStatus track draw-down by downstream
// references when this line belongs to a referenceable voucher.
type VoucherLine struct {
	ID                uuid.UUID         `db:"id" json:"id"`
	VoucherID         uuid.UUID         `db:"voucher_id" json:"voucher_id"`
	TenantID          uuid.UUID         `db:"tenant_id" json:"tenant_id"`
	Position          int               `db:"position" json:"position"`
	ProductID         uuid.UUID         `db:"product_id" json:"product_id"`
	Description       string            `db:"description" json:"description"`
	HSNCode           string            `db:"hsn_code" json:"hsn_code"`
	Quantity          decimal.Decimal   `db:"quantity" json:"quantity"`
	Unit              string            `db:"unit" json:"unit"`
	UnitPrice         decimal.Decimal   `db:"unit_price" json:"unit_price"`
	TaxRatePercent    decimal.Decimal   `db:"tax_rate_percent" json:"tax_rate_percent"`
	DiscountType      *DiscountType     `db:"discount_type" json:"discount_type,omitempty"`
	DiscountValue     decimal.Decimal   `db:"discount_value" json:"discount_value"`
	TaxableAmount     decimal.Decimal   `db:"taxable_amount" json:"taxable_amount"`
	CGSTAmount        decimal.Decimal   `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount        decimal.Decimal   `db:"sgst_amount" json:"sgst_amount"`
	IGSTAmount        decimal.Decimal   `db:"igst_amount" json:"igst_amount"`
	LineTotal         decimal.Decimal   `db:"line_total" json:"line_total"`
	ConsumedQuantity  decimal.Decimal   `db:"consumed_quantity" json:"consumed_quantity"`
	ConsumptionStatus ConsumptionStatus `db:"consumption_status" json:"consumption_status"`
	CreatedAt         time.Time         `db:"created_at" json:"created_at"`
}

// RemainingQuantity returns the quantity still available for downstream
// references against this line.
func (l *VoucherLine) RemainingQuantity() decimal.Decimal {
	remaining := l.Quantity.Sub(l.ConsumedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ReferenceLink records a downstream voucher consuming quantity from a source
// voucher line. Many links may point at one source line; the sum of active
// consumed quantities never exceeds the source line's original quantity.
type ReferenceLink struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	TenantID         uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	SourceType       VoucherType     `db:"source_type" json:"source_type"`
	SourceID         uuid.UUID       `db:"source_id" json:"source_id"`
	SourceLineID     uuid.UUID       `db:"source_line_id" json:"source_line_id"`
	VoucherID        uuid.UUID       `db:"voucher_id" json:"voucher_id"`
	ConsumedQuantity decimal.Decimal `db:"consumed_quantity" json:"consumed_quantity"`
	IsActive         bool            `db:"is_active" json:"is_active"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// TaxSummaryRow is one rate bucket of the GST tax summary report.
type TaxSummaryRow struct {
	TaxRatePercent decimal.Decimal `db:"tax_rate_percent" json:"tax_rate_percent"`
	TaxableAmount  decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGST           decimal.Decimal `db:"cgst" json:"cgst"`
	SGST           decimal.Decimal `db:"sgst" json:"sgst"`
	IGST           decimal.Decimal `db:"igst" json:"igst"`
	VoucherCount   int             `db:"voucher_count" json:"voucher_count"`
}

// ReportFilters narrows report queries by date range and voucher type.
type ReportFilters struct {
	From        *time.Time
	To          *time.Time
	VoucherType *VoucherType
}
