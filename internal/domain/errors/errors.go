package errors

import (
	"errors"
)

var (
	ErrCartPersistence = errors.New("failed to persist cart")
	ErrCorruptCart     = errors.New("stored cart data is corrupt")
	ErrStorageKeyEmpty = errors.New("storage key cannot be empty")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCartLine = errors.New("invalid cart line")
	ErrProductNotFound = errors.New("product not found")

	ErrInvalidPromoCode      = errors.New("invalid promo code")
	ErrPromoAlreadyApplied   = errors.New("promo code already applied")
	ErrMissingShippingFields = errors.New("missing required shipping fields")
	ErrNegativeTotal         = errors.New("order total cannot be negative")

	ErrNotAuthenticated = errors.New("please log in to continue")
	ErrForbidden        = errors.New("insufficient permissions")

	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderRejected  = errors.New("order rejected by server")
	ErrAPIUnavailable = errors.New("storefront api unavailable")

	ErrInvalidPromoDefinition = errors.New("invalid promo code definition")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrPromoCodeNotFound      = errors.New("promo code not found")
)
