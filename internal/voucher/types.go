package voucher

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"opsuite/internal/domain"
)

// LineItem is one row of a voucher as supplied by the caller. Computed
// amounts live in LineComputation; this struct carries only inputs.
type LineItem struct {
	ProductID      uuid.UUID     `json:"product_id"`
	Description    string        `json:"description"`
	HSNCode        string        `json:"hsn_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string        `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	Discount       *DiscountSpec `json:"discount,omitempty"`
}

// DiscountSpec is a tagged choice of percentage or fixed-amount discount.
// A nil *DiscountSpec means "no discount", which is distinct from a
// zero-value discount.
type DiscountSpec struct {
	Type  domain.DiscountType `json:"type"`
	Value decimal.Decimal     `json:"value"`
}

// JurisdictionContext carries the state information needed to decide
// intrastate vs. interstate tax treatment. CounterpartyStateCode wins over
// the GSTIN-derived code when both are present.
type JurisdictionContext struct {
	TenantStateCode       string `json:"tenant_state_code"`
	CounterpartyStateCode string `json:"counterparty_state_code"`
	CounterpartyGSTIN     string `json:"counterparty_gstin"`
}

// Jurisdiction is the resolver's verdict. Assumed is set when state codes
// were unresolvable and the intrastate default was applied; callers surface
// it as a warning but never block on it.
type Jurisdiction struct {
	Intrastate bool `json:"intrastate"`
	Assumed    bool `json:"assumed"`
}

// TaxSplit is the CGST/SGST/IGST decomposition of tax on a taxable base.
type TaxSplit struct {
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	IGST decimal.Decimal `json:"igst"`
}

// LineComputation is the engine's output for a single line, in stored order.
type LineComputation struct {
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	CGST           decimal.Decimal `json:"cgst"`
	SGST           decimal.Decimal `json:"sgst"`
	IGST           decimal.Decimal `json:"igst"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// RateBucket aggregates taxable amount and tax components for one tax rate,
// keyed by the rate's canonical string in ComputedTotals.GSTBreakdown.
type RateBucket struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
}

// ComputedTotals is the immutable output aggregate of a full computation.
// It is recomputed fresh on every input change, never patched in place.
type ComputedTotals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	RoundOff      decimal.Decimal `json:"round_off"`
	GrandTotal    decimal.Decimal `json:"grand_total"`

	Jurisdiction Jurisdiction          `json:"jurisdiction"`
	Lines        []LineComputation     `json:"lines"`
	GSTBreakdown map[string]RateBucket `json:"gst_breakdown"`
}

// ComputeInput bundles everything the pipeline needs for one document.
type ComputeInput struct {
	Lines            []LineItem           `json:"lines"`
	DocumentDiscount *DiscountSpec        `json:"document_discount,omitempty"`
	Jurisdiction     JurisdictionContext  `json:"jurisdiction"`
}

// WarningCode identifies a non-fatal computation warning.
type WarningCode string

const (
	WarnRateNormalized      WarningCode = "input_normalized"
	WarnJurisdictionAssumed WarningCode = "jurisdiction_assumed"
)

// Warning is a non-fatal condition surfaced beside a computation result.
// Warnings never block saving; UIs use them to prompt the user.
type Warning struct {
	Code    WarningCode `json:"code"`
	Field   string      `json:"field,omitempty"`
	Message string      `json:"message"`
}
