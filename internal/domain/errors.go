package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrTenantInactive       = errors.New("tenant is inactive")
	ErrDuplicateTenantSlug  = errors.New("tenant slug already exists")
	ErrPartyNotFound        = errors.New("party not found")
	ErrVoucherNotFound      = errors.New("voucher not found")
	ErrVoucherCancelled     = errors.New("voucher is cancelled")
	ErrInvalidVoucherType   = errors.New("invalid voucher type")
	ErrInvalidDiscount      = errors.New("invalid discount specification")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInsufficientQuantity = errors.New("requested quantity exceeds remaining source quantity")
	ErrInvalidReference     = errors.New("referenced source line does not exist or is no longer available")
	ErrDuplicateVoucherNo   = errors.New("voucher number already exists for this tenant")
	ErrSourceConsumed       = errors.New("voucher has lines consumed by downstream documents")
	ErrExportFailed         = errors.New("report export failed")
)
