package api

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/storefront-service/internal/domain/cart"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
)

// The API speaks plain JSON numbers for money; conversion to and from decimal
// happens only in this file.

type paymentInfoDTO struct {
	Subtotal  float64 `json:"subtotal"`
	Discount  float64 `json:"discount"`
	Shipping  float64 `json:"shipping"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	PromoCode string  `json:"promoCode,omitempty"`
}

type orderItemDTO struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

type createOrderRequest struct {
	ShippingInfo checkout.ShippingForm `json:"shippingInfo"`
	PaymentInfo  paymentInfoDTO        `json:"paymentInfo"`
	Items        []orderItemDTO        `json:"items"`
}

func newCreateOrderRequest(req *checkout.OrderRequest) createOrderRequest {
	items := make([]orderItemDTO, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orderItemDTO{
			Product:  it.Product,
			Name:     it.Name,
			Price:    it.Price.InexactFloat64(),
			Quantity: it.Quantity,
			Image:    it.Image,
		})
	}

	pi := req.PaymentInfo
	return createOrderRequest{
		ShippingInfo: req.ShippingInfo,
		PaymentInfo: paymentInfoDTO{
			Subtotal:  pi.Subtotal.InexactFloat64(),
			Discount:  pi.Discount.InexactFloat64(),
			Shipping:  pi.Shipping.InexactFloat64(),
			Tax:       pi.Tax.InexactFloat64(),
			Total:     pi.Total.InexactFloat64(),
			PromoCode: pi.PromoCode,
		},
		Items: items,
	}
}

type productDTO struct {
	ID    string   `json:"_id"`
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	Image string   `json:"image"`
}

func (p productDTO) toCart() *cart.Product {
	product := &cart.Product{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
	}
	if p.Price != nil {
		product.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*p.Price))
	}
	return product
}

// productRef is an order line's product: either a bare id or a populated document.
type productRef struct {
	productDTO
}

func (r *productRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	return json.Unmarshal(data, &r.productDTO)
}

type orderLineDTO struct {
	Product  productRef `json:"product"`
	Name     string     `json:"name"`
	Price    float64    `json:"price"`
	Quantity int        `json:"quantity"`
	Image    string     `json:"image"`
}

type orderDTO struct {
	ID           string                `json:"_id"`
	OrderID      string                `json:"orderId"`
	ShippingInfo checkout.ShippingForm `json:"shippingInfo"`
	PaymentInfo  paymentInfoDTO        `json:"paymentInfo"`
	Items        []orderLineDTO        `json:"items"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
}

func (o orderDTO) id() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.ID
}

func (o orderDTO) toDomain() *order.Order {
	items := make([]order.Item, 0, len(o.Items))
	for _, line := range o.Items {
		product := order.Product{
			ID:    line.Product.ID,
			Name:  line.Product.Name,
			Image: line.Product.Image,
		}
		if line.Product.Price != nil {
			product.Price = decimal.NewFromFloat(*line.Product.Price)
		}

		items = append(items, order.Item{
			Product:  product,
			Name:     line.Name,
			Price:    decimal.NewFromFloat(line.Price),
			Quantity: line.Quantity,
			Image:    line.Image,
		})
	}

	pi := o.PaymentInfo
	return &order.Order{
		ID:           o.id(),
		ShippingInfo: o.ShippingInfo,
		PaymentInfo: order.PaymentInfo{
			Subtotal:  decimal.NewFromFloat(pi.Subtotal),
			Discount:  decimal.NewFromFloat(pi.Discount),
			Shipping:  decimal.NewFromFloat(pi.Shipping),
			Tax:       decimal.NewFromFloat(pi.Tax),
			Total:     decimal.NewFromFloat(pi.Total),
			PromoCode: pi.PromoCode,
		},
		Items:     items,
		Status:    order.Status(o.Status),
		CreatedAt: o.CreatedAt,
	}
}

type createOrderResponse struct {
	OrderID string    `json:"orderId"`
	Order   *orderDTO `json:"order"`
}

type orderResponse struct {
	Success bool      `json:"success"`
	Order   *orderDTO `json:"order"`
}

type ordersResponse struct {
	Orders []orderDTO `json:"orders"`
}

type productResponse struct {
	Product *productDTO `json:"product"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type promoCodeDTO struct {
	ID             string     `json:"_id,omitempty"`
	Code           string     `json:"code"`
	DiscountType   string     `json:"discountType"`
	DiscountValue  float64    `json:"discountValue"`
	MinOrderAmount float64    `json:"minOrderAmount"`
	UsageLimit     *int       `json:"usageLimit,omitempty"`
	UsedCount      int        `json:"usedCount,omitempty"`
	IsActive       bool       `json:"isActive"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

func newPromoCodeDTO(c *promo.Code) promoCodeDTO {
	dto := promoCodeDTO{
		ID:             c.ID,
		Code:           c.Code,
		DiscountType:   string(c.DiscountType),
		DiscountValue:  c.DiscountValue.InexactFloat64(),
		MinOrderAmount: c.MinOrderAmount.InexactFloat64(),
		UsedCount:      c.UsedCount,
		IsActive:       c.IsActive,
		ExpiresAt:      c.ExpiresAt,
	}
	if c.UsageLimit > 0 {
		limit := c.UsageLimit
		dto.UsageLimit = &limit
	}
	return dto
}

func (p promoCodeDTO) toDomain() promo.Code {
	c := promo.Code{
		ID:             p.ID,
		Code:           p.Code,
		DiscountType:   promo.DiscountType(p.DiscountType),
		DiscountValue:  decimal.NewFromFloat(p.DiscountValue),
		MinOrderAmount: decimal.NewFromFloat(p.MinOrderAmount),
		UsedCount:      p.UsedCount,
		IsActive:       p.IsActive,
		ExpiresAt:      p.ExpiresAt,
	}
	if p.UsageLimit != nil {
		c.UsageLimit = *p.UsageLimit
	}
	return c
}

type promoCodesResponse struct {
	PromoCodes []promoCodeDTO `json:"promoCodes"`
}

type promoCodeResponse struct {
	PromoCode *promoCodeDTO `json:"promoCode"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
