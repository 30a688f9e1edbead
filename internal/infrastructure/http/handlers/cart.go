package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yuzvak/storefront-service/internal/application/commands"
	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/infrastructure/http/response"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type CartHandler struct {
	cartStore  *use_cases.CartStore
	addHandler *commands.AddToCartHandler
	log        *logger.Logger
}

func NewCartHandler(cartStore *use_cases.CartStore, addHandler *commands.AddToCartHandler, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cartStore:  cartStore,
		addHandler: addHandler,
		log:        log,
	}
}

// AddItemRequest carries a product snapshot (productId plus price or name), or
// a bare productId when the product should be looked up in the catalog.
type AddItemRequest struct {
	ProductID string              `json:"productId"`
	Name      *string             `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
	Image     string              `json:"image"`
}

func (r AddItemRequest) isSnapshot() bool {
	return r.Name != nil || r.Price.Valid || r.Image != ""
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse reports Persisted=false when the cart changed in memory but
// could not be written to storage.
type CartResponse struct {
	use_cases.CartSnapshot
	Persisted bool `json:"persisted"`
}

type ToggleResponse struct {
	IsOpen bool `json:"isOpen"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, CartResponse{CartSnapshot: h.cartStore.Snapshot(), Persisted: true})
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ProductID == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"productId": "productId is required",
		})
		return
	}

	cmd := commands.AddToCartCommand{ProductID: req.ProductID}
	if req.isSnapshot() {
		cmd.Product = &cart.Product{
			ID:    req.ProductID,
			Price: req.Price,
			Image: req.Image,
		}
		if req.Name != nil {
			cmd.Product.Name = *req.Name
		}
	}

	snapshot, err := h.addHandler.Handle(r.Context(), cmd)
	h.writeCart(w, snapshot, err)
}

func (h *CartHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.cartStore.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), req.Quantity)
	h.writeSnapshot(w, err)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	err := h.cartStore.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
	h.writeSnapshot(w, err)
}

func (h *CartHandler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	err := h.cartStore.IncrementQuantity(r.Context(), chi.URLParam(r, "productId"))
	h.writeSnapshot(w, err)
}

func (h *CartHandler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	err := h.cartStore.DecrementQuantity(r.Context(), chi.URLParam(r, "productId"))
	h.writeSnapshot(w, err)
}

func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	err := h.cartStore.ClearCart(r.Context())
	h.writeSnapshot(w, err)
}

func (h *CartHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, ToggleResponse{IsOpen: h.cartStore.ToggleCart()})
}

func (h *CartHandler) writeSnapshot(w http.ResponseWriter, err error) {
	snapshot := h.cartStore.Snapshot()
	h.writeCart(w, &snapshot, err)
}

// writeCart treats a storage failure as a soft error: the mutation already
// happened in memory, so the new cart is still returned.
func (h *CartHandler) writeCart(w http.ResponseWriter, snapshot *use_cases.CartSnapshot, err error) {
	if err != nil && !errors.Is(err, domainErrors.ErrCartPersistence) {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, CartResponse{CartSnapshot: *snapshot, Persisted: err == nil})
}
