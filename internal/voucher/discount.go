package voucher

import (
	"github.com/shopspring/decimal"

	"opsuite/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// discountAmount computes the discount a spec takes off the given base.
// Percentage discounts are a fraction of the base; amount discounts are
// clamped to the base so a line can never go negative. A nil spec or an
// unknown type yields zero.
func discountAmount(base decimal.Decimal, spec *DiscountSpec) decimal.Decimal {
	if spec == nil || spec.Value.IsNegative() || !base.IsPositive() {
		return decimal.Zero
	}
	switch spec.Type {
	case domain.DiscountTypePercentage:
		value := spec.Value
		if value.GreaterThan(hundred) {
			value = hundred
		}
		return base.Mul(value).Div(hundred)
	case domain.DiscountTypeAmount:
		if spec.Value.GreaterThan(base) {
			return base
		}
		return spec.Value
	}
	return decimal.Zero
}

// discountResult is the output of applyDiscounts, per line and in total.
type discountResult struct {
	lineBases        []decimal.Decimal // base after line discount, before document discount
	lineDiscounts    []decimal.Decimal // per-line discount amounts
	docShares        []decimal.Decimal // per-line share of the document discount
	taxableBases     []decimal.Decimal // final post-discount taxable base per line
	documentDiscount decimal.Decimal   // total document-level discount
}

// applyDiscounts runs the two-stage discount policy in a fixed order: line
// discounts first, then the document discount distributed proportionally
// across the post-line-discount bases so tax is charged on the final base.
// The order is not configurable per call; reproducibility across
// create/edit/view flows depends on it.
//
// Distribution is exact: per-line shares are rounded to two decimals, each
// capped at its line's base, and the rounding remainder is settled across
// lines that still have capacity, so the shares always sum to the document
// discount precisely and no line's post-discount base goes negative. Lines
// with a zero base receive no share, and a zero pre-discount subtotal skips
// distribution entirely.
func applyDiscounts(grossBases []decimal.Decimal, lineSpecs []*DiscountSpec, docDiscount *DiscountSpec) discountResult {
	n := len(grossBases)
	res := discountResult{
		lineBases:     make([]decimal.Decimal, n),
		lineDiscounts: make([]decimal.Decimal, n),
		docShares:     make([]decimal.Decimal, n),
		taxableBases:  make([]decimal.Decimal, n),
	}

	subtotal := decimal.Zero
	for i, base := range grossBases {
		d := discountAmount(base, lineSpecs[i])
		res.lineDiscounts[i] = d
		res.lineBases[i] = base.Sub(d)
		res.docShares[i] = decimal.Zero
		subtotal = subtotal.Add(res.lineBases[i])
	}

	res.documentDiscount = discountAmount(subtotal, docDiscount).Round(rateScale)

	if res.documentDiscount.IsPositive() && subtotal.IsPositive() {
		allocated := decimal.Zero
		for i, base := range res.lineBases {
			if !base.IsPositive() {
				continue
			}
			share := base.Div(subtotal).Mul(res.documentDiscount).Round(rateScale)
			if share.GreaterThan(base) {
				share = base
			}
			res.docShares[i] = share
			allocated = allocated.Add(share)
		}
		// Settle the rounding remainder back to front. A positive remainder
		// fits because the document discount is clamped to the subtotal; a
		// negative one comes off lines that were rounded up.
		remainder := res.documentDiscount.Sub(allocated)
		for i := n - 1; i >= 0 && !remainder.IsZero(); i-- {
			if remainder.IsPositive() {
				capacity := res.lineBases[i].Sub(res.docShares[i])
				if !capacity.IsPositive() {
					continue
				}
				take := decimal.Min(remainder, capacity)
				res.docShares[i] = res.docShares[i].Add(take)
				remainder = remainder.Sub(take)
			} else {
				if !res.docShares[i].IsPositive() {
					continue
				}
				give := decimal.Min(remainder.Neg(), res.docShares[i])
				res.docShares[i] = res.docShares[i].Sub(give)
				remainder = remainder.Add(give)
			}
		}
	}

	for i := range res.lineBases {
		res.taxableBases[i] = res.lineBases[i].Sub(res.docShares[i])
	}
	return res
}
