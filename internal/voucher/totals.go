package voucher

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Compute runs the full pipeline for one document: input sanitation,
// jurisdiction resolution, discounts, per-line tax, and final aggregation
// with an explicit round-off to the nearest whole currency unit.
//
// The function is pure and deterministic: lines are processed in their
// stored order and identical input always produces identical output, so it
// is safe to invoke on every input change and to recompute from persisted
// data. Warnings report coerced input and assumed jurisdiction; they never
// block the computation.
func Compute(in ComputeInput) (*ComputedTotals, []Warning) {
	var warnings []Warning

	jur := ResolveJurisdiction(in.Jurisdiction)
	if jur.Assumed {
		warnings = append(warnings, Warning{
			Code:    WarnJurisdictionAssumed,
			Field:   "jurisdiction",
			Message: "state code unresolvable; tax computed as intrastate",
		})
	}

	lines, lineSpecs, sanitized := sanitizeLines(in.Lines)
	warnings = append(warnings, sanitized...)

	grossBases := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		grossBases[i] = l.Quantity.Mul(l.UnitPrice)
	}

	disc := applyDiscounts(grossBases, lineSpecs, in.DocumentDiscount)

	totals := &ComputedTotals{
		Subtotal:      decimal.Zero,
		TotalDiscount: decimal.Zero,
		TaxableAmount: decimal.Zero,
		CGST:          decimal.Zero,
		SGST:          decimal.Zero,
		IGST:          decimal.Zero,
		Jurisdiction:  jur,
		Lines:         make([]LineComputation, len(lines)),
		GSTBreakdown:  make(map[string]RateBucket),
	}

	for i, l := range lines {
		taxable := disc.taxableBases[i]
		split := ComputeTax(taxable, l.TaxRatePercent, jur.Intrastate)
		lineDiscount := disc.lineDiscounts[i].Add(disc.docShares[i])

		totals.Lines[i] = LineComputation{
			GrossAmount:    grossBases[i],
			DiscountAmount: lineDiscount,
			TaxableAmount:  taxable,
			TaxRatePercent: l.TaxRatePercent,
			CGST:           split.CGST,
			SGST:           split.SGST,
			IGST:           split.IGST,
			LineTotal:      taxable.Add(split.CGST).Add(split.SGST).Add(split.IGST),
		}

		totals.Subtotal = totals.Subtotal.Add(grossBases[i])
		totals.TotalDiscount = totals.TotalDiscount.Add(lineDiscount)
		totals.TaxableAmount = totals.TaxableAmount.Add(taxable)
		totals.CGST = totals.CGST.Add(split.CGST)
		totals.SGST = totals.SGST.Add(split.SGST)
		totals.IGST = totals.IGST.Add(split.IGST)

		addToBreakdown(totals.GSTBreakdown, l.TaxRatePercent, taxable, split)
	}

	raw := totals.TaxableAmount.Add(totals.CGST).Add(totals.SGST).Add(totals.IGST)
	totals.GrandTotal = raw.Round(0)
	totals.RoundOff = totals.GrandTotal.Sub(raw)

	return totals, warnings
}

// sanitizeLines clamps malformed numeric input to zero and drops unusable
// discount specs, emitting a warning for each coercion. The computation must
// proceed on whatever the form delivered; warnings are logged for
// observability only.
func sanitizeLines(input []LineItem) ([]LineItem, []*DiscountSpec, []Warning) {
	var warnings []Warning
	lines := make([]LineItem, len(input))
	specs := make([]*DiscountSpec, len(input))
	copy(lines, input)

	warn := func(i int, field string) {
		warnings = append(warnings, Warning{
			Code:    WarnRateNormalized,
			Field:   fmt.Sprintf("lines[%d].%s", i, field),
			Message: "malformed value coerced to zero",
		})
	}

	for i := range lines {
		if lines[i].Quantity.IsNegative() {
			lines[i].Quantity = decimal.Zero
			warn(i, "quantity")
		}
		if lines[i].UnitPrice.IsNegative() {
			lines[i].UnitPrice = decimal.Zero
			warn(i, "unit_price")
		}
		if lines[i].TaxRatePercent.IsNegative() {
			lines[i].TaxRatePercent = decimal.Zero
			warn(i, "tax_rate_percent")
		}
		if d := lines[i].Discount; d != nil {
			if !d.Type.IsValid() || d.Value.IsNegative() {
				warn(i, "discount")
				specs[i] = nil
				continue
			}
			specs[i] = d
		}
	}
	return lines, specs, warnings
}
