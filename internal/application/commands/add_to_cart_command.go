package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/application/use_cases"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

// AddToCartCommand carries either a full product snapshot or just a product id
// to be resolved through the catalog.
type AddToCartCommand struct {
	Product   *cart.Product
	ProductID string
}

type AddToCartHandler struct {
	cartStore *use_cases.CartStore
	catalog   ports.CatalogAPI
	log       *logger.Logger
}

func NewAddToCartHandler(cartStore *use_cases.CartStore, catalog ports.CatalogAPI, log *logger.Logger) *AddToCartHandler {
	return &AddToCartHandler{
		cartStore: cartStore,
		catalog:   catalog,
		log:       log,
	}
}

func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*use_cases.CartSnapshot, error) {
	product, err := h.resolve(ctx, cmd)
	if err != nil {
		return nil, err
	}

	err = h.cartStore.AddToCart(ctx, *product)
	snapshot := h.cartStore.Snapshot()
	if err != nil {
		return &snapshot, err
	}

	h.log.Debug("Product added to cart", "product_id", product.ID, "item_count", snapshot.ItemCount)
	return &snapshot, nil
}

func (h *AddToCartHandler) resolve(ctx context.Context, cmd AddToCartCommand) (*cart.Product, error) {
	if cmd.Product != nil && cmd.Product.ID != "" {
		return cmd.Product, nil
	}

	if cmd.ProductID == "" {
		return nil, fmt.Errorf("%w: product id is required", domainErrors.ErrInvalidCartLine)
	}

	product, err := h.catalog.GetProduct(ctx, cmd.ProductID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrProductNotFound) {
			h.log.Error("Failed to resolve product", "error", err, "product_id", cmd.ProductID)
		}
		return nil, err
	}
	return product, nil
}
