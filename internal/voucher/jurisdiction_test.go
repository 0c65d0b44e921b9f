package voucher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"opsuite/internal/voucher"
)

func TestResolveJurisdiction_SameState(t *testing.T) {
	jur := voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		TenantStateCode:       "27",
		CounterpartyStateCode: "27",
	})
	assert.True(t, jur.Intrastate)
	assert.False(t, jur.Assumed)
}

func TestResolveJurisdiction_DifferentState(t *testing.T) {
	jur := voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		TenantStateCode:       "27",
		CounterpartyStateCode: "29",
	})
	assert.False(t, jur.Intrastate)
	assert.False(t, jur.Assumed)
}

func TestResolveJurisdiction_GSTINFallback(t *testing.T) {
	jur := voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		TenantStateCode:   "27",
		CounterpartyGSTIN: "29ABCDE1234F1Z5",
	})
	assert.False(t, jur.Intrastate)
	assert.False(t, jur.Assumed)

	jur = voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		TenantStateCode:   "27",
		CounterpartyGSTIN: "27ABCDE1234F1Z5",
	})
	assert.True(t, jur.Intrastate)
	assert.False(t, jur.Assumed)
}

func TestResolveJurisdiction_ExplicitStateWinsOverGSTIN(t *testing.T) {
	jur := voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		TenantStateCode:       "27",
		CounterpartyStateCode: "27",
		CounterpartyGSTIN:     "29ABCDE1234F1Z5",
	})
	assert.True(t, jur.Intrastate)
}

func TestResolveJurisdiction_MissingTenantStateAssumesIntrastate(t *testing.T) {
	jur := voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		CounterpartyStateCode: "29",
	})
	assert.True(t, jur.Intrastate)
	assert.True(t, jur.Assumed)
}

func TestResolveJurisdiction_UnresolvableCounterpartyAssumesIntrastate(t *testing.T) {
	jur := voucher.ResolveJurisdiction(voucher.JurisdictionContext{
		TenantStateCode:   "27",
		CounterpartyGSTIN: "2",
	})
	assert.True(t, jur.Intrastate)
	assert.True(t, jur.Assumed)
}
