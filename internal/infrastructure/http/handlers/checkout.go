package handlers

import (
	"net/http"

	"github.com/yuzvak/storefront-service/internal/application/commands"
	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type CheckoutHandler struct {
	cartStore    *use_cases.CartStore
	checkout     *use_cases.CheckoutUseCase
	placeHandler *commands.PlaceOrderHandler
	log          *logger.Logger
}

func NewCheckoutHandler(
	cartStore *use_cases.CartStore,
	checkoutUseCase *use_cases.CheckoutUseCase,
	placeHandler *commands.PlaceOrderHandler,
	log *logger.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		cartStore:    cartStore,
		checkout:     checkoutUseCase,
		placeHandler: placeHandler,
		log:          log,
	}
}

type CheckoutSummary struct {
	Items  []cart.LineItem        `json:"items"`
	Totals checkout.DisplayTotals `json:"totals"`
}

type PromoRequest struct {
	Code string `json:"code"`
}

type ShippingRequest struct {
	ShippingInfo checkout.ShippingForm `json:"shippingInfo"`
}

type ValidateShippingResponse struct {
	Valid         bool     `json:"valid"`
	MissingFields []string `json:"missingFields"`
}

func (h *CheckoutHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, CheckoutSummary{
		Items:  h.cartStore.Items(),
		Totals: h.checkout.Summary().Display(),
	})
}

func (h *CheckoutHandler) HandleApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req PromoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	totals, err := h.checkout.ApplyPromoCode(req.Code)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, totals.Display())
}

func (h *CheckoutHandler) HandleRemovePromo(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, h.checkout.RemovePromoCode().Display())
}

func (h *CheckoutHandler) HandleValidateShipping(w http.ResponseWriter, r *http.Request) {
	var req ShippingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	missing := h.checkout.ValidateShipping(req.ShippingInfo)
	response.WriteSuccess(w, ValidateShippingResponse{
		Valid:         len(missing) == 0,
		MissingFields: missing,
	})
}

func (h *CheckoutHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req ShippingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.placeHandler.Handle(r.Context(), commands.PlaceOrderCommand{
		ShippingInfo: req.ShippingInfo,
	})
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteCreated(w, resp)
}
