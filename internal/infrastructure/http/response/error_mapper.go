package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

// errorMappings is checked in order; wrapped errors may match more than one entry.
var errorMappings = []struct {
	err     error
	mapping ErrorMapping
}{
	{domainErrors.ErrEmptyCart, ErrorMapping{http.StatusBadRequest, StatusError, "Your cart is empty"}},
	{domainErrors.ErrInvalidCartLine, ErrorMapping{http.StatusBadRequest, StatusError, "Cart contains an invalid item"}},
	{domainErrors.ErrProductNotFound, ErrorMapping{http.StatusNotFound, StatusNotFound, "Product not found"}},
	{domainErrors.ErrInvalidPromoCode, ErrorMapping{http.StatusBadRequest, StatusError, "Invalid promo code"}},
	{domainErrors.ErrPromoAlreadyApplied, ErrorMapping{http.StatusConflict, StatusConflict, "Promo code already applied"}},
	{domainErrors.ErrNegativeTotal, ErrorMapping{http.StatusBadRequest, StatusError, "Order total cannot be negative"}},
	{domainErrors.ErrInvalidPromoDefinition, ErrorMapping{http.StatusBadRequest, StatusValidationError, "Invalid promo code definition"}},
	{domainErrors.ErrInvalidOrderStatus, ErrorMapping{http.StatusBadRequest, StatusValidationError, "Invalid order status"}},
	{domainErrors.ErrNotAuthenticated, ErrorMapping{http.StatusUnauthorized, StatusUnauthorized, "Please log in to place an order"}},
	{domainErrors.ErrForbidden, ErrorMapping{http.StatusForbidden, StatusForbidden, "Insufficient permissions"}},
	{domainErrors.ErrOrderNotFound, ErrorMapping{http.StatusNotFound, StatusNotFound, "Order not found"}},
	{domainErrors.ErrPromoCodeNotFound, ErrorMapping{http.StatusNotFound, StatusNotFound, "Promo code not found"}},
	{domainErrors.ErrOrderRejected, ErrorMapping{http.StatusBadGateway, StatusBadGateway, "Failed to place order"}},
	{domainErrors.ErrAPIUnavailable, ErrorMapping{http.StatusBadGateway, StatusBadGateway, "Storefront API unavailable"}},
	{domainErrors.ErrCartPersistence, ErrorMapping{http.StatusInternalServerError, StatusInternalError, "Failed to save cart"}},
	{context.DeadlineExceeded, ErrorMapping{http.StatusGatewayTimeout, StatusServiceUnavailable, "Request timed out"}},
}

func MapDomainError(err error) (int, interface{}) {
	var missing *checkout.MissingFieldsError
	if errors.As(err, &missing) {
		fields := make(map[string]string, len(missing.Fields))
		for _, f := range missing.Fields {
			fields[f] = "required"
		}
		return http.StatusBadRequest, ValidationError(missing.Error(), fields)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.mapping.HTTPStatus, Error(m.mapping.Status, m.mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error", err.Error())
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
