package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// VoucherType distinguishes the business documents flowing through the system.
type VoucherType string

const (
	VoucherTypeSalesInvoice  VoucherType = "sales_invoice"
	VoucherTypeSalesOrder    VoucherType = "sales_order"
	VoucherTypePurchaseOrder VoucherType = "purchase_order"
	VoucherTypeGRN           VoucherType = "grn"
	VoucherTypeCreditNote    VoucherType = "credit_note"
)

// IsValid reports whether the voucher type is one of the known types.
func (t VoucherType) IsValid() bool {
	switch t {
	case VoucherTypeSalesInvoice, VoucherTypeSalesOrder, VoucherTypePurchaseOrder,
		VoucherTypeGRN, VoucherTypeCreditNote:
		return true
	}
	return false
}

// CanBeReferenced reports whether downstream documents may consume lines of
// this voucher type. Only order-style documents act as sources.
func (t VoucherType) CanBeReferenced() bool {
	return t == VoucherTypePurchaseOrder || t == VoucherTypeSalesOrder
}

// VoucherStatus represents the lifecycle of a voucher.
type VoucherStatus string

const (
	VoucherStatusIssued    VoucherStatus = "issued"
	VoucherStatusCancelled VoucherStatus = "cancelled"
)

// PartyKind distinguishes counterparty master records.
type PartyKind string

const (
	PartyKindCustomer PartyKind = "customer"
	PartyKindVendor   PartyKind = "vendor"
)

// DiscountType is the tagged choice between percentage and fixed-amount discounts.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeAmount     DiscountType = "amount"
)

// IsValid reports whether the discount type is known.
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeAmount
}

// ConsumptionStatus tracks how much of a source voucher line has been drawn
// down by downstream references.
type ConsumptionStatus string

const (
	ConsumptionAvailable         ConsumptionStatus = "available"
	ConsumptionPartiallyConsumed ConsumptionStatus = "partially_consumed"
	ConsumptionFullyConsumed     ConsumptionStatus = "fully_consumed"
)
