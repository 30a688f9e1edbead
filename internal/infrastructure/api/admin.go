package api

import (
	"context"
	"net/http"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
)

func (c *Client) ListOrders(ctx context.Context, token string) ([]order.Order, error) {
	var out ordersResponse
	err := c.do(ctx, call{
		op:     "list_orders",
		method: http.MethodGet,
		path:   []string{"api", "orders"},
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(out.Orders))
	for _, o := range out.Orders {
		orders = append(orders, *o.toDomain())
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID string, status order.Status) (*order.Order, error) {
	var out orderResponse
	err := c.do(ctx, call{
		op:     "update_order_status",
		method: http.MethodPut,
		path:   []string{"api", "orders", orderID, "status"},
		token:  token,
		body:   updateStatusRequest{Status: string(status)},
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Order == nil {
		return nil, missingField("update_order_status", "order")
	}
	return out.Order.toDomain(), nil
}

func (c *Client) ListPromoCodes(ctx context.Context, token string) ([]promo.Code, error) {
	var out promoCodesResponse
	err := c.do(ctx, call{
		op:     "list_promo_codes",
		method: http.MethodGet,
		path:   []string{"api", "promo-codes"},
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}

	codes := make([]promo.Code, 0, len(out.PromoCodes))
	for _, p := range out.PromoCodes {
		codes = append(codes, p.toDomain())
	}
	return codes, nil
}

func (c *Client) CreatePromoCode(ctx context.Context, token string, code *promo.Code) (*promo.Code, error) {
	var out promoCodeResponse
	err := c.do(ctx, call{
		op:     "create_promo_code",
		method: http.MethodPost,
		path:   []string{"api", "promo-codes"},
		token:  token,
		body:   newPromoCodeDTO(code),
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.PromoCode == nil {
		return nil, missingField("create_promo_code", "promoCode")
	}

	created := out.PromoCode.toDomain()
	return &created, nil
}

func (c *Client) DeletePromoCode(ctx context.Context, token, id string) error {
	return c.do(ctx, call{
		op:       "delete_promo_code",
		method:   http.MethodDelete,
		path:     []string{"api", "promo-codes", id},
		token:    token,
		notFound: domainErrors.ErrPromoCodeNotFound,
	})
}
