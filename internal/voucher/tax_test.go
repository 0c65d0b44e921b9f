package voucher_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"opsuite/internal/voucher"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeTax_IntrastateSplitsHalfHalf(t *testing.T) {
	split := voucher.ComputeTax(d("1000"), d("18"), true)
	assert.True(t, d("90").Equal(split.CGST), "CGST = %s", split.CGST)
	assert.True(t, d("90").Equal(split.SGST), "SGST = %s", split.SGST)
	assert.True(t, split.IGST.IsZero())
}

func TestComputeTax_InterstateFullIGST(t *testing.T) {
	split := voucher.ComputeTax(d("1000"), d("18"), false)
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
	assert.True(t, d("180").Equal(split.IGST), "IGST = %s", split.IGST)
}

func TestComputeTax_ZeroRateExempt(t *testing.T) {
	split := voucher.ComputeTax(d("1000"), decimal.Zero, true)
	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
	assert.True(t, split.IGST.IsZero())
}

func TestComputeTax_RoundsComponentsToTwoDecimals(t *testing.T) {
	// 99.5 * 18% / 2 = 8.955, rounds half away from zero to 8.96
	split := voucher.ComputeTax(d("99.5"), d("18"), true)
	assert.True(t, d("8.96").Equal(split.CGST), "CGST = %s", split.CGST)
	assert.True(t, d("8.96").Equal(split.SGST), "SGST = %s", split.SGST)
}

func TestComputeTax_HalvesAreEqual(t *testing.T) {
	bases := []string{"0.01", "1", "33.33", "99.99", "1234.56"}
	rates := []string{"0.25", "5", "12", "18", "28"}
	for _, b := range bases {
		for _, r := range rates {
			split := voucher.ComputeTax(d(b), d(r), true)
			assert.True(t, split.CGST.Equal(split.SGST),
				"base %s rate %s: CGST %s != SGST %s", b, r, split.CGST, split.SGST)
		}
	}
}
