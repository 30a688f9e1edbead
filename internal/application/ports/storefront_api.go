package ports

import (
	"context"

	"github.com/yuzvak/storefront-service/internal/domain/cart"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
)

type OrderAPI interface {
	CreateOrder(ctx context.Context, token string, req *checkout.OrderRequest) (string, error)
	GetOrder(ctx context.Context, token, orderID string) (*order.Order, error)
}

type CatalogAPI interface {
	GetProduct(ctx context.Context, productID string) (*cart.Product, error)
}

type AdminAPI interface {
	ListOrders(ctx context.Context, token string) ([]order.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID string, status order.Status) (*order.Order, error)
	ListPromoCodes(ctx context.Context, token string) ([]promo.Code, error)
	CreatePromoCode(ctx context.Context, token string, code *promo.Code) (*promo.Code, error)
	DeletePromoCode(ctx context.Context, token, id string) error
}
