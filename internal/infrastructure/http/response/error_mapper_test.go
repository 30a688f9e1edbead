package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   Status
	}{
		{"empty cart", domainErrors.ErrEmptyCart, http.StatusBadRequest, StatusError},
		{"invalid line", fmt.Errorf("%w: p1 has no price", domainErrors.ErrInvalidCartLine), http.StatusBadRequest, StatusError},
		{"product not found", domainErrors.ErrProductNotFound, http.StatusNotFound, StatusNotFound},
		{"invalid promo", domainErrors.ErrInvalidPromoCode, http.StatusBadRequest, StatusError},
		{"promo applied", domainErrors.ErrPromoAlreadyApplied, http.StatusConflict, StatusConflict},
		{"negative total", domainErrors.ErrNegativeTotal, http.StatusBadRequest, StatusError},
		{"bad promo definition", domainErrors.ErrInvalidPromoDefinition, http.StatusBadRequest, StatusValidationError},
		{"bad status", domainErrors.ErrInvalidOrderStatus, http.StatusBadRequest, StatusValidationError},
		{"not authenticated", domainErrors.ErrNotAuthenticated, http.StatusUnauthorized, StatusUnauthorized},
		{"forbidden", domainErrors.ErrForbidden, http.StatusForbidden, StatusForbidden},
		{"order not found", domainErrors.ErrOrderNotFound, http.StatusNotFound, StatusNotFound},
		{"promo not found", domainErrors.ErrPromoCodeNotFound, http.StatusNotFound, StatusNotFound},
		{"rejected", fmt.Errorf("create_order: %w", domainErrors.ErrOrderRejected), http.StatusBadGateway, StatusBadGateway},
		{"unavailable", domainErrors.ErrAPIUnavailable, http.StatusBadGateway, StatusBadGateway},
		{"persistence", domainErrors.ErrCartPersistence, http.StatusInternalServerError, StatusInternalError},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout, StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, StatusInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := MapDomainError(tt.err)

			assert.Equal(t, tt.status, status)
			resp, ok := body.(*ErrorResponse)
			require.True(t, ok)
			assert.Equal(t, string(tt.code), resp.Code)
			assert.Equal(t, tt.err.Error(), resp.Error)
		})
	}
}

func TestMapDomainError_MissingFields(t *testing.T) {
	err := &checkout.MissingFieldsError{Fields: []string{"email", "zipCode"}}

	status, body := MapDomainError(err)

	assert.Equal(t, http.StatusBadRequest, status)
	resp, ok := body.(*ValidationErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "Please fill in all required fields: email, zipCode", resp.Message)
	assert.Equal(t, map[string]string{"email": "required", "zipCode": "required"}, resp.Errors)
}

func TestWriteDomainError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteDomainError(rec, domainErrors.ErrPromoAlreadyApplied)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Promo code already applied", body["message"])
	assert.Equal(t, "conflict", body["code"])
}
