package commands

import (
	"context"
	"errors"

	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
	"github.com/yuzvak/storefront-service/internal/pkg/requestid"
)

type PlaceOrderCommand struct {
	ShippingInfo checkout.ShippingForm
}

type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

type PlaceOrderHandler struct {
	checkout *use_cases.CheckoutUseCase
	metrics  *monitoring.BusinessMetricsMiddleware
	log      *logger.Logger
}

func NewPlaceOrderHandler(checkoutUseCase *use_cases.CheckoutUseCase, log *logger.Logger) *PlaceOrderHandler {
	return &PlaceOrderHandler{
		checkout: checkoutUseCase,
		metrics:  monitoring.NewBusinessMetricsMiddleware(),
		log:      log,
	}
}

func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResponse, error) {
	h.log.Info("Processing order placement", "request_id", requestid.FromContext(ctx))

	place := h.metrics.WrapPlaceOrder(func(ctx context.Context) (string, error) {
		return h.checkout.PlaceOrder(ctx, cmd.ShippingInfo)
	}, FailureReason)

	orderID, err := place(ctx)
	if err != nil {
		h.log.Warn("Order placement failed", "error", err.Error(), "reason", FailureReason(err))
		return nil, err
	}

	return &PlaceOrderResponse{
		Success: true,
		OrderID: orderID,
	}, nil
}

// FailureReason maps a placement error to a bounded metrics label.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrMissingShippingFields):
		return "missing_fields"
	case errors.Is(err, domainErrors.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domainErrors.ErrInvalidCartLine):
		return "invalid_line"
	case errors.Is(err, domainErrors.ErrNegativeTotal):
		return "negative_total"
	case errors.Is(err, domainErrors.ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, domainErrors.ErrAPIUnavailable):
		return "api_unavailable"
	case errors.Is(err, domainErrors.ErrOrderRejected):
		return "rejected"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "other"
	}
}
