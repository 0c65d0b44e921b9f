package voucher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsuite/internal/domain"
	"opsuite/internal/voucher"
)

func computedFixture() *voucher.ComputedTotals {
	totals, _ := voucher.Compute(voucher.ComputeInput{
		Lines: []voucher.LineItem{
			line("3", "33.33", "18"),
			line("2", "149.99", "12"),
		},
		DocumentDiscount: &voucher.DiscountSpec{Type: domain.DiscountTypeAmount, Value: d("20")},
		Jurisdiction:     intrastateCtx(),
	})
	return totals
}

func TestReconcile_EngineOutputIsClean(t *testing.T) {
	assert.Empty(t, voucher.Reconcile(computedFixture()))
}

func TestReconcile_DetectsTamperedGrandTotal(t *testing.T) {
	totals := computedFixture()
	totals.GrandTotal = totals.GrandTotal.Add(d("10"))

	issues := voucher.Reconcile(totals)
	require.NotEmpty(t, issues)
	found := false
	for _, is := range issues {
		if is.RuleKey == "reconcile.totals.grand_total" {
			found = true
		}
	}
	assert.True(t, found, "expected a grand_total issue, got %+v", issues)
}

func TestReconcile_DetectsTamperedLineTotal(t *testing.T) {
	totals := computedFixture()
	totals.Lines[0].LineTotal = totals.Lines[0].LineTotal.Add(d("1"))

	issues := voucher.Reconcile(totals)
	require.NotEmpty(t, issues)
	assert.Equal(t, "reconcile.line.total", issues[0].RuleKey)
	assert.Equal(t, "lines[0].line_total", issues[0].FieldPath)
}

func TestReconcile_DetectsIGSTOnIntrastate(t *testing.T) {
	totals := computedFixture()
	totals.Lines[0].IGST = d("5")

	issues := voucher.Reconcile(totals)
	found := false
	for _, is := range issues {
		if is.RuleKey == "reconcile.line.intrastate_igst" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestReconcile_DetectsExcessiveRoundOff(t *testing.T) {
	totals := computedFixture()
	totals.RoundOff = d("0.75")
	totals.GrandTotal = totals.TaxableAmount.Add(totals.CGST).Add(totals.SGST).Add(totals.IGST).Add(totals.RoundOff)

	issues := voucher.Reconcile(totals)
	found := false
	for _, is := range issues {
		if is.RuleKey == "reconcile.totals.round_off" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestReconcile_DetectsDiscountMismatch(t *testing.T) {
	totals := computedFixture()
	totals.TotalDiscount = totals.TotalDiscount.Add(d("3"))

	issues := voucher.Reconcile(totals)
	found := false
	for _, is := range issues {
		if is.RuleKey == "reconcile.totals.discount" {
			found = true
		}
	}
	assert.True(t, found)
}
