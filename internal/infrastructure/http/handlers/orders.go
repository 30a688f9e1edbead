package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type OrderHandler struct {
	checkout *use_cases.CheckoutUseCase
	log      *logger.Logger
}

func NewOrderHandler(checkoutUseCase *use_cases.CheckoutUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: checkoutUseCase,
		log:      log,
	}
}

type OrderResponse struct {
	Success bool         `json:"success"`
	Order   *order.Order `json:"order"`
}

func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	o, err := h.checkout.GetOrder(r.Context(), orderID)
	if err != nil {
		h.log.Warn("Failed to load order", "order_id", orderID, "error", err.Error())
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, OrderResponse{Success: true, Order: o})
}
