package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

func line(id, p string, qty int) cart.LineItem {
	item := cart.LineItem{ProductID: id, Name: "Item " + id, Image: id + ".png", Quantity: qty}
	if p != "" {
		item.Price = decimal.NewNullDecimal(dec(p))
	}
	return item
}

func TestBuildOrderRequest(t *testing.T) {
	c := newCalculator()
	require.NoError(t, c.ApplyPromoCode("SAVE10"))
	items := []cart.LineItem{line("p1", "10.00", 2), line("p2", "4.50", 1)}
	totals := c.Totals(dec("24.50"))

	req, err := BuildOrderRequest(items, completeForm(), totals)

	require.NoError(t, err)
	require.Len(t, req.Items, 2)
	assert.Equal(t, "p1", req.Items[0].Product)
	assert.Equal(t, "Item p1", req.Items[0].Name)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, "p1.png", req.Items[0].Image)
	assertDecimal(t, "20.00", req.Items[0].Total)
	assertDecimal(t, "4.50", req.Items[1].Total)

	assert.Equal(t, completeForm(), req.ShippingInfo)
	assertDecimal(t, "24.50", req.PaymentInfo.Subtotal)
	assertDecimal(t, "10.00", req.PaymentInfo.Discount)
	assertDecimal(t, "5.00", req.PaymentInfo.Shipping)
	assertDecimal(t, "5.00", req.PaymentInfo.Tax)
	assertDecimal(t, "24.50", req.PaymentInfo.Total)
	assert.Equal(t, "SAVE10", req.PaymentInfo.PromoCode)
}

func TestBuildOrderRequest_NoPromoCodeWhenNotApplied(t *testing.T) {
	req, err := BuildOrderRequest([]cart.LineItem{line("p1", "1", 1)}, completeForm(), newCalculator().Totals(dec("1")))

	require.NoError(t, err)
	assert.Empty(t, req.PaymentInfo.PromoCode)
}

func TestBuildOrderRequest_EmptyCart(t *testing.T) {
	_, err := BuildOrderRequest(nil, completeForm(), Totals{})

	assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
}

func TestBuildOrderRequest_InvalidLines(t *testing.T) {
	tests := []struct {
		name    string
		item    cart.LineItem
		message string
	}{
		{"missing product reference", line("", "1", 1), "line 2 has no product reference"},
		{"missing price", line("p9", "", 1), "p9 has no price"},
		{"zero quantity", line("p9", "1", 0), "p9 has no quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []cart.LineItem{line("p1", "1", 1), tt.item, line("p3", "1", 1)}

			req, err := BuildOrderRequest(items, completeForm(), Totals{})

			assert.Nil(t, req)
			assert.ErrorIs(t, err, domainErrors.ErrInvalidCartLine)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
