package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

type PaymentInfo struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Shipping  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	PromoCode string
}

type OrderItem struct {
	Product  string
	Name     string
	Price    decimal.Decimal
	Quantity int
	Image    string
	Total    decimal.Decimal
}

// OrderRequest is the order-creation payload before it is put on the wire.
type OrderRequest struct {
	ShippingInfo ShippingForm
	PaymentInfo  PaymentInfo
	Items        []OrderItem
}

// BuildOrderRequest converts cart lines into order items. It stops at the first
// line without a product reference, a numeric price or a positive quantity.
func BuildOrderRequest(items []cart.LineItem, form ShippingForm, totals Totals) (*OrderRequest, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	orderItems := make([]OrderItem, 0, len(items))
	for i, item := range items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: line %d has no product reference", domainErrors.ErrInvalidCartLine, i+1)
		}
		if !item.Price.Valid {
			return nil, fmt.Errorf("%w: %s has no price", domainErrors.ErrInvalidCartLine, item.ProductID)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: %s has no quantity", domainErrors.ErrInvalidCartLine, item.ProductID)
		}

		orderItems = append(orderItems, OrderItem{
			Product:  item.ProductID,
			Name:     item.Name,
			Price:    item.Price.Decimal,
			Quantity: item.Quantity,
			Image:    item.Image,
			Total:    item.LineTotal(),
		})
	}

	return &OrderRequest{
		ShippingInfo: form,
		PaymentInfo: PaymentInfo{
			Subtotal:  totals.Subtotal,
			Discount:  totals.Discount,
			Shipping:  totals.Shipping,
			Tax:       totals.Tax,
			Total:     totals.Total,
			PromoCode: totals.PromoCode,
		},
		Items: orderItems,
	}, nil
}
