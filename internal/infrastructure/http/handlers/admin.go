package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type AdminHandler struct {
	admin *use_cases.AdminUseCase
	log   *logger.Logger
}

func NewAdminHandler(admin *use_cases.AdminUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		admin: admin,
		log:   log,
	}
}

type OrdersResponse struct {
	Orders []order.Order `json:"orders"`
}

type UpdateStatusRequest struct {
	Status order.Status `json:"status"`
}

type PromoCodesResponse struct {
	PromoCodes []promo.Code `json:"promoCodes"`
}

type PromoCodeResponse struct {
	PromoCode *promo.Code `json:"promoCode"`
}

func (h *AdminHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.admin.ListOrders(r.Context())
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, OrdersResponse{Orders: orders})
}

func (h *AdminHandler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.admin.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, OrderResponse{Success: true, Order: updated})
}

func (h *AdminHandler) HandleListPromoCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.admin.ListPromoCodes(r.Context())
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, PromoCodesResponse{PromoCodes: codes})
}

func (h *AdminHandler) HandleCreatePromoCode(w http.ResponseWriter, r *http.Request) {
	var req promo.Code
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.admin.CreatePromoCode(r.Context(), req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteCreated(w, PromoCodeResponse{PromoCode: created})
}

func (h *AdminHandler) HandleDeletePromoCode(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeletePromoCode(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
