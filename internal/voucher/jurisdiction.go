package voucher

// ResolveJurisdiction decides intrastate vs. interstate tax treatment by
// comparing the tenant's state code with the counterparty's. The
// counterparty state falls back to the first two characters of its GSTIN
// when no explicit code exists. When either side is unresolvable the
// verdict defaults to intrastate with Assumed set, so computation can
// proceed and the UI can warn the user.
func ResolveJurisdiction(ctx JurisdictionContext) Jurisdiction {
	if ctx.TenantStateCode == "" {
		return Jurisdiction{Intrastate: true, Assumed: true}
	}

	counterparty := ctx.CounterpartyStateCode
	if counterparty == "" && len(ctx.CounterpartyGSTIN) >= 2 {
		counterparty = ctx.CounterpartyGSTIN[:2]
	}
	if counterparty == "" {
		return Jurisdiction{Intrastate: true, Assumed: true}
	}

	return Jurisdiction{Intrastate: ctx.TenantStateCode == counterparty}
}
