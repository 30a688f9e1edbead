package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/storefront-service/internal/domain/checkout"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type Item struct {
	Product  Product         `json:"product"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

type PaymentInfo struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	PromoCode string          `json:"promoCode,omitempty"`
}

// Order is the confirmation view of an order owned by the external API.
type Order struct {
	ID           string                `json:"orderId"`
	ShippingInfo checkout.ShippingForm `json:"shippingInfo"`
	PaymentInfo  PaymentInfo           `json:"paymentInfo"`
	Items        []Item                `json:"items"`
	Status       Status                `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
}

type PlacedItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Placed is emitted once the API has accepted an order.
type Placed struct {
	EventID     string          `json:"eventId"`
	EventType   string          `json:"eventType"`
	OrderID     string          `json:"orderId"`
	Items       []PlacedItem    `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PromoCode   string          `json:"promoCode,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

const PlacedEventType = "OrderPlaced"

func NewPlaced(eventID, orderID string, req *checkout.OrderRequest, at time.Time) *Placed {
	items := make([]PlacedItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, PlacedItem{
			ProductID: it.Product,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return &Placed{
		EventID:     eventID,
		EventType:   PlacedEventType,
		OrderID:     orderID,
		Items:       items,
		TotalAmount: req.PaymentInfo.Total,
		PromoCode:   req.PaymentInfo.PromoCode,
		Timestamp:   at,
	}
}
