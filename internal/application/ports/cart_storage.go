package ports

import (
	"context"

	"github.com/yuzvak/storefront-service/internal/domain/cart"
)

type CartStorage interface {
	Load(ctx context.Context) ([]cart.LineItem, error)
	Save(ctx context.Context, items []cart.LineItem) error
}
