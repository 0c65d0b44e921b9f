package voucher

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const rateScale = 2

// NormalizeRate parses a raw rate or amount string into a canonical
// two-decimal value. Form inputs arrive partially typed or locale-formatted
// ("1,000.50", "18 %", "₹99.9"), so everything except digits and the first
// decimal point is stripped. Negative results clamp to zero and unparseable
// input normalizes to zero; this function never fails, which keeps NaN and
// garbage out of the rest of the pipeline.
func NormalizeRate(raw string) decimal.Decimal {
	var b strings.Builder
	seenDot := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			b.WriteRune('.')
			seenDot = true
		}
	}
	cleaned := b.String()
	if cleaned == "" || cleaned == "." {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(rateScale)
}

// FlexDecimal is a decimal that unmarshals from either a JSON number or a
// JSON string, normalizing string input through NormalizeRate. API clients
// bind form fields straight into requests, so both shapes occur.
type FlexDecimal struct {
	decimal.Decimal
}

// UnmarshalJSON accepts a number, a quoted numeric string, or null.
func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		f.Decimal = decimal.Zero
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			f.Decimal = decimal.Zero
			return nil
		}
		f.Decimal = NormalizeRate(raw)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		f.Decimal = decimal.Zero
		return nil
	}
	if d.IsNegative() {
		d = decimal.Zero
	}
	f.Decimal = d
	return nil
}

// MarshalJSON renders the value as a JSON number string, matching how
// decimal amounts are serialized elsewhere in the API.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	return f.Decimal.MarshalJSON()
}
