package voucher

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// ComputeTax splits the tax on a taxable base into its GST components.
// Intrastate transactions charge half the rate as CGST and half as SGST;
// interstate transactions charge the full rate as IGST. A zero rate yields
// an all-zero split, so exempt items need no special-casing. Components are
// rounded to two decimals per line.
func ComputeTax(taxableBase, ratePercent decimal.Decimal, intrastate bool) TaxSplit {
	if ratePercent.IsZero() || taxableBase.IsZero() {
		return TaxSplit{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero}
	}
	if intrastate {
		half := taxableBase.Mul(ratePercent).Div(hundred).Div(two).Round(rateScale)
		return TaxSplit{CGST: half, SGST: half, IGST: decimal.Zero}
	}
	full := taxableBase.Mul(ratePercent).Div(hundred).Round(rateScale)
	return TaxSplit{CGST: decimal.Zero, SGST: decimal.Zero, IGST: full}
}

// rateKey is the canonical GSTBreakdown key for a tax rate.
func rateKey(ratePercent decimal.Decimal) string {
	return ratePercent.String()
}

// addToBreakdown accumulates a line's taxable base and tax split into the
// per-rate bucket map used for reporting.
func addToBreakdown(breakdown map[string]RateBucket, ratePercent, taxableBase decimal.Decimal, split TaxSplit) {
	key := rateKey(ratePercent)
	bucket, ok := breakdown[key]
	if !ok {
		bucket = RateBucket{
			TaxableAmount: decimal.Zero,
			CGST:          decimal.Zero,
			SGST:          decimal.Zero,
			IGST:          decimal.Zero,
		}
	}
	bucket.TaxableAmount = bucket.TaxableAmount.Add(taxableBase)
	bucket.CGST = bucket.CGST.Add(split.CGST)
	bucket.SGST = bucket.SGST.Add(split.SGST)
	bucket.IGST = bucket.IGST.Add(split.IGST)
	breakdown[key] = bucket
}
