package voucher

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// reconcileTolerance absorbs the per-line two-decimal rounding of tax
// components when sums are compared.
var reconcileTolerance = decimal.NewFromFloat(0.01)

// maxRoundOff is the largest adjustment the round-to-rupee policy can
// legitimately produce.
var maxRoundOff = decimal.NewFromFloat(0.50)

// ReconcileIssue describes one failed arithmetic invariant on a computed or
// stored voucher.
type ReconcileIssue struct {
	RuleKey   string `json:"rule_key"`
	FieldPath string `json:"field_path"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
	Message   string `json:"message"`
}

func approxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(reconcileTolerance)
}

func issue(key, fieldPath string, expected, actual decimal.Decimal) ReconcileIssue {
	return ReconcileIssue{
		RuleKey:   key,
		FieldPath: fieldPath,
		Expected:  expected.StringFixed(2),
		Actual:    actual.StringFixed(2),
		Message:   fmt.Sprintf("%s: expected %s, got %s", fieldPath, expected.StringFixed(2), actual.StringFixed(2)),
	}
}

// Reconcile checks the arithmetic invariants of a computed totals aggregate.
// An empty result means the totals reconcile; any issue indicates corrupted
// stored data or an engine bug, not a user-facing condition.
func Reconcile(t *ComputedTotals) []ReconcileIssue {
	var issues []ReconcileIssue

	var sumTaxable, sumCGST, sumSGST, sumIGST decimal.Decimal
	for i, l := range t.Lines {
		sumTaxable = sumTaxable.Add(l.TaxableAmount)
		sumCGST = sumCGST.Add(l.CGST)
		sumSGST = sumSGST.Add(l.SGST)
		sumIGST = sumIGST.Add(l.IGST)

		fp := fmt.Sprintf("lines[%d]", i)
		lineTotal := l.TaxableAmount.Add(l.CGST).Add(l.SGST).Add(l.IGST)
		if !approxEqual(l.LineTotal, lineTotal) {
			issues = append(issues, issue("reconcile.line.total", fp+".line_total", lineTotal, l.LineTotal))
		}
		if t.Jurisdiction.Intrastate && !l.IGST.IsZero() {
			issues = append(issues, issue("reconcile.line.intrastate_igst", fp+".igst", decimal.Zero, l.IGST))
		}
		if !t.Jurisdiction.Intrastate && (!l.CGST.IsZero() || !l.SGST.IsZero()) {
			issues = append(issues, issue("reconcile.line.interstate_cgst_sgst", fp+".cgst", decimal.Zero, l.CGST.Add(l.SGST)))
		}
	}

	if !approxEqual(t.TaxableAmount, sumTaxable) {
		issues = append(issues, issue("reconcile.totals.taxable_amount", "taxable_amount", sumTaxable, t.TaxableAmount))
	}
	if !approxEqual(t.CGST, sumCGST) {
		issues = append(issues, issue("reconcile.totals.cgst", "cgst", sumCGST, t.CGST))
	}
	if !approxEqual(t.SGST, sumSGST) {
		issues = append(issues, issue("reconcile.totals.sgst", "sgst", sumSGST, t.SGST))
	}
	if !approxEqual(t.IGST, sumIGST) {
		issues = append(issues, issue("reconcile.totals.igst", "igst", sumIGST, t.IGST))
	}

	expectedTaxable := t.Subtotal.Sub(t.TotalDiscount)
	if !approxEqual(t.TaxableAmount, expectedTaxable) {
		issues = append(issues, issue("reconcile.totals.discount", "taxable_amount", expectedTaxable, t.TaxableAmount))
	}

	expectedGrand := t.TaxableAmount.Add(t.CGST).Add(t.SGST).Add(t.IGST).Add(t.RoundOff)
	if !approxEqual(t.GrandTotal, expectedGrand) {
		issues = append(issues, issue("reconcile.totals.grand_total", "grand_total", expectedGrand, t.GrandTotal))
	}

	if t.RoundOff.Abs().GreaterThan(maxRoundOff) {
		issues = append(issues, issue("reconcile.totals.round_off", "round_off", maxRoundOff, t.RoundOff.Abs()))
	}

	return issues
}
