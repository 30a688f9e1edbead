package api

import (
	"context"
	"net/http"

	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

func (c *Client) GetProduct(ctx context.Context, productID string) (*cart.Product, error) {
	var out productResponse
	err := c.do(ctx, call{
		op:       "get_product",
		method:   http.MethodGet,
		path:     []string{"api", "products", productID},
		out:      &out,
		notFound: domainErrors.ErrProductNotFound,
	})
	if err != nil {
		return nil, err
	}
	if out.Product == nil {
		return nil, missingField("get_product", "product")
	}

	product := out.Product.toCart()
	if product.ID == "" {
		product.ID = productID
	}
	return product, nil
}
