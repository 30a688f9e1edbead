package api

import (
	"context"
	"net/http"

	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	"github.com/yuzvak/storefront-service/internal/domain/order"
)

// CreateOrder posts the order and returns the server-assigned id.
func (c *Client) CreateOrder(ctx context.Context, token string, req *checkout.OrderRequest) (string, error) {
	var out createOrderResponse
	err := c.do(ctx, call{
		op:     "create_order",
		method: http.MethodPost,
		path:   []string{"api", "orders"},
		token:  token,
		body:   newCreateOrderRequest(req),
		out:    &out,
	})
	if err != nil {
		return "", err
	}

	orderID := out.OrderID
	if orderID == "" && out.Order != nil {
		orderID = out.Order.id()
	}
	if orderID == "" {
		return "", missingField("create_order", "orderId")
	}
	return orderID, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*order.Order, error) {
	var out orderResponse
	err := c.do(ctx, call{
		op:     "get_order",
		method: http.MethodGet,
		path:   []string{"api", "orders", orderID},
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Order == nil {
		return nil, missingField("get_order", "order")
	}

	o := out.Order.toDomain()
	if o.ID == "" {
		o.ID = orderID
	}
	return o, nil
}
