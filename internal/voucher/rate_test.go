package voucher_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"opsuite/internal/voucher"
)

func TestNormalizeRate_PlainNumber(t *testing.T) {
	assert.True(t, decimal.NewFromInt(18).Equal(voucher.NormalizeRate("18")))
	assert.True(t, decimal.NewFromFloat(12.5).Equal(voucher.NormalizeRate("12.5")))
}

func TestNormalizeRate_StripsFormatting(t *testing.T) {
	assert.True(t, decimal.NewFromInt(18).Equal(voucher.NormalizeRate("18 %")))
	assert.True(t, decimal.NewFromFloat(99.9).Equal(voucher.NormalizeRate("₹99.9")))
	assert.True(t, decimal.NewFromFloat(1000.50).Equal(voucher.NormalizeRate("1,000.50")))
}

func TestNormalizeRate_KeepsFirstDotOnly(t *testing.T) {
	assert.True(t, decimal.NewFromFloat(1.23).Equal(voucher.NormalizeRate("1.2.3")))
}

func TestNormalizeRate_RoundsToTwoDecimals(t *testing.T) {
	assert.True(t, decimal.NewFromFloat(12.35).Equal(voucher.NormalizeRate("12.345")))
}

func TestNormalizeRate_GarbageToZero(t *testing.T) {
	assert.True(t, voucher.NormalizeRate("").IsZero())
	assert.True(t, voucher.NormalizeRate("abc").IsZero())
	assert.True(t, voucher.NormalizeRate(".").IsZero())
	assert.True(t, voucher.NormalizeRate("%₹,").IsZero())
}

func TestNormalizeRate_Idempotent(t *testing.T) {
	inputs := []string{"18", "18 %", "₹1,234.56", "0.005", ""}
	for _, in := range inputs {
		once := voucher.NormalizeRate(in)
		twice := voucher.NormalizeRate(once.String())
		assert.True(t, once.Equal(twice), "normalizing %q twice changed the value", in)
	}
}

func TestFlexDecimal_UnmarshalNumber(t *testing.T) {
	var f voucher.FlexDecimal
	assert.NoError(t, json.Unmarshal([]byte(`18.5`), &f))
	assert.True(t, decimal.NewFromFloat(18.5).Equal(f.Decimal))
}

func TestFlexDecimal_UnmarshalString(t *testing.T) {
	var f voucher.FlexDecimal
	assert.NoError(t, json.Unmarshal([]byte(`"18 %"`), &f))
	assert.True(t, decimal.NewFromInt(18).Equal(f.Decimal))
}

func TestFlexDecimal_UnmarshalNullAndEmpty(t *testing.T) {
	var f voucher.FlexDecimal
	assert.NoError(t, json.Unmarshal([]byte(`null`), &f))
	assert.True(t, f.Decimal.IsZero())

	assert.NoError(t, json.Unmarshal([]byte(`""`), &f))
	assert.True(t, f.Decimal.IsZero())
}

func TestFlexDecimal_NegativeNumberClampsToZero(t *testing.T) {
	var f voucher.FlexDecimal
	assert.NoError(t, json.Unmarshal([]byte(`-42`), &f))
	assert.True(t, f.Decimal.IsZero())
}
