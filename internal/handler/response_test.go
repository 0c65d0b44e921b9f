package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"opsuite/internal/domain"
	"opsuite/internal/handler"
)

func TestMapDomainError_StatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrVoucherNotFound, http.StatusNotFound, "VOUCHER_NOT_FOUND"},
		{domain.ErrPartyNotFound, http.StatusNotFound, "PARTY_NOT_FOUND"},
		{domain.ErrInsufficientQuantity, http.StatusConflict, "INSUFFICIENT_QUANTITY"},
		{domain.ErrInvalidReference, http.StatusUnprocessableEntity, "INVALID_REFERENCE"},
		{domain.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{domain.ErrInvalidDiscount, http.StatusBadRequest, "INVALID_DISCOUNT"},
		{domain.ErrDuplicateVoucherNo, http.StatusConflict, "DUPLICATE_VOUCHER_NUMBER"},
		{domain.ErrVoucherCancelled, http.StatusConflict, "VOUCHER_CANCELLED"},
		{domain.ErrSourceConsumed, http.StatusConflict, "SOURCE_CONSUMED"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, _ := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Equal(t, tc.code, code, "error %v", tc.err)
	}
}
