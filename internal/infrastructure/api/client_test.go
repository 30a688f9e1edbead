package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
	"github.com/yuzvak/storefront-service/internal/pkg/requestid"
)

type fixedIDs struct{}

func (fixedIDs) RequestID() string { return "req-fixed" }
func (fixedIDs) EventID() string   { return "evt-fixed" }

type recorded struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, <-chan recorded) {
	t.Helper()
	ch := make(chan recorded, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ch <- recorded{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: body}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 2*time.Second, fixedIDs{}, logger.NewNop())
	require.NoError(t, err)
	return c, ch
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrderRequest() *checkout.OrderRequest {
	return &checkout.OrderRequest{
		ShippingInfo: checkout.ShippingForm{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Phone: "555",
			Address: "1 Way", City: "London", State: "LDN", ZipCode: "10001",
		},
		PaymentInfo: checkout.PaymentInfo{
			Subtotal: dec("20.00"), Discount: dec("10.00"), Shipping: dec("5.00"),
			Tax: dec("5.00"), Total: dec("20.00"), PromoCode: "SAVE10",
		},
		Items: []checkout.OrderItem{
			{Product: "p1", Name: "Widget", Price: dec("10.00"), Quantity: 2, Image: "w.png", Total: dec("20.00")},
		},
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient("localhost:5000", time.Second, fixedIDs{}, logger.NewNop())
	assert.Error(t, err)
}

func TestCreateOrder(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"success":true,"orderId":"ord-42"}`)
	})

	orderID, err := c.CreateOrder(context.Background(), "jwt", sampleOrderRequest())

	require.NoError(t, err)
	assert.Equal(t, "ord-42", orderID)

	got := <-reqs
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/orders", got.path)
	assert.Equal(t, "Bearer jwt", got.header.Get("Authorization"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "req-fixed", got.header.Get(requestid.Header))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got.body, &body))
	payment := body["paymentInfo"].(map[string]interface{})
	assert.Equal(t, 20.0, payment["subtotal"])
	assert.Equal(t, 10.0, payment["discount"])
	assert.Equal(t, 20.0, payment["total"])
	assert.Equal(t, "SAVE10", payment["promoCode"])

	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "p1", item["product"])
	assert.Equal(t, 10.0, item["price"])
	assert.Equal(t, 2.0, item["quantity"])

	shipping := body["shippingInfo"].(map[string]interface{})
	assert.Equal(t, "ada@example.com", shipping["email"])
	assert.Equal(t, "10001", shipping["zipCode"])
}

func TestCreateOrder_IDFromNestedOrder(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"success":true,"order":{"_id":"mongo-1"}}`)
	})

	orderID, err := c.CreateOrder(context.Background(), "jwt", sampleOrderRequest())

	require.NoError(t, err)
	assert.Equal(t, "mongo-1", orderID)
}

func TestCreateOrder_PropagatesRequestID(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"orderId":"ord-1"}`)
	})
	ctx := requestid.NewContext(context.Background(), "inbound-7")

	_, err := c.CreateOrder(ctx, "jwt", sampleOrderRequest())

	require.NoError(t, err)
	assert.Equal(t, "inbound-7", (<-reqs).header.Get(requestid.Header))
}

func TestCreateOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid token"}`, domainErrors.ErrNotAuthenticated, "Invalid token"},
		{"forbidden", http.StatusForbidden, `{"message":"Admins only"}`, domainErrors.ErrForbidden, "Admins only"},
		{"validation", http.StatusBadRequest, `{"error":"Insufficient stock"}`, domainErrors.ErrOrderRejected, "Insufficient stock"},
		{"server error", http.StatusInternalServerError, `boom`, domainErrors.ErrOrderRejected, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := c.CreateOrder(context.Background(), "jwt", sampleOrderRequest())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "create_order", apiErr.Op)
		})
	}
}

func TestCreateOrder_MissingOrderID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"success":true}`)
	})

	_, err := c.CreateOrder(context.Background(), "jwt", sampleOrderRequest())

	assert.ErrorIs(t, err, domainErrors.ErrAPIUnavailable)
}

func TestCreateOrder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url, time.Second, fixedIDs{}, logger.NewNop())
	require.NoError(t, err)

	_, err = c.CreateOrder(context.Background(), "jwt", sampleOrderRequest())

	assert.ErrorIs(t, err, domainErrors.ErrAPIUnavailable)
}

func TestGetOrder(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{
			"success": true,
			"order": {
				"_id": "ord-42",
				"shippingInfo": {"firstName": "Ada", "email": "ada@example.com"},
				"paymentInfo": {"subtotal": 20, "discount": 10, "shipping": 5, "tax": 5, "total": 20, "promoCode": "SAVE10"},
				"items": [
					{"product": {"_id": "p1", "name": "Widget", "price": 10, "image": "w.png"}, "name": "Widget", "price": 10, "quantity": 2, "image": "w.png"},
					{"product": "p2", "name": "Gadget", "price": 4.5, "quantity": 1}
				],
				"status": "pending",
				"createdAt": "2026-01-02T03:04:05Z"
			}
		}`)
	})

	o, err := c.GetOrder(context.Background(), "jwt", "ord-42")
	require.NoError(t, err)

	got := <-reqs
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/orders/ord-42", got.path)

	assert.Equal(t, "ord-42", o.ID)
	assert.Equal(t, "Ada", o.ShippingInfo.FirstName)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.True(t, o.PaymentInfo.Total.Equal(dec("20")))
	assert.Equal(t, "SAVE10", o.PaymentInfo.PromoCode)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "p1", o.Items[0].Product.ID)
	assert.True(t, o.Items[0].Product.Price.Equal(dec("10")))
	assert.Equal(t, "p2", o.Items[1].Product.ID)
	assert.True(t, o.Items[1].Price.Equal(dec("4.5")))
	assert.True(t, o.CreatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestGetOrder_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":"Order not found"}`)
	})

	_, err := c.GetOrder(context.Background(), "jwt", "missing")

	assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
}

func TestGetOrder_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, http.StatusOK, `{"success":true,"order":{"_id":"late"}}`)
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	o, err := c.GetOrder(ctx, "jwt", "late")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetProduct(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"product":{"_id":"p1","name":"Widget","price":19.99,"image":"w.png"}}`)
	})

	p, err := c.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "/api/products/p1", (<-reqs).path)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Widget", p.Name)
	require.True(t, p.Price.Valid)
	assert.True(t, p.Price.Decimal.Equal(dec("19.99")))
}

func TestGetProduct_NoPriceAndNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/free" {
			writeJSON(w, http.StatusOK, `{"product":{"_id":"free","name":"Sample"}}`)
			return
		}
		writeJSON(w, http.StatusNotFound, `{"error":"Product not found"}`)
	})

	p, err := c.GetProduct(context.Background(), "free")
	require.NoError(t, err)
	assert.False(t, p.Price.Valid)

	_, err = c.GetProduct(context.Background(), "gone")
	assert.ErrorIs(t, err, domainErrors.ErrProductNotFound)
}

func TestAdminEndpoints(t *testing.T) {
	c, reqs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/orders":
			writeJSON(w, http.StatusOK, `{"orders":[{"_id":"o1","status":"pending"},{"_id":"o2","status":"shipped"}]}`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/orders/o1/status":
			writeJSON(w, http.StatusOK, `{"success":true,"order":{"_id":"o1","status":"shipped"}}`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/promo-codes":
			writeJSON(w, http.StatusOK, `{"promoCodes":[{"_id":"pc1","code":"SPRING","discountType":"percentage","discountValue":15,"minOrderAmount":0,"isActive":true}]}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/promo-codes":
			writeJSON(w, http.StatusCreated, `{"promoCode":{"_id":"pc2","code":"FLAT5","discountType":"fixed","discountValue":5,"minOrderAmount":20,"usageLimit":100,"isActive":true}}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/promo-codes/pc2":
			w.WriteHeader(http.StatusNoContent)
		default:
			writeJSON(w, http.StatusNotFound, `{"error":"not found"}`)
		}
	})
	ctx := context.Background()

	orders, err := c.ListOrders(ctx, "jwt")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, order.StatusShipped, orders[1].Status)
	<-reqs

	updated, err := c.UpdateOrderStatus(ctx, "jwt", "o1", order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
	put := <-reqs
	assert.JSONEq(t, `{"status":"shipped"}`, string(put.body))

	codes, err := c.ListPromoCodes(ctx, "jwt")
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, promo.DiscountPercentage, codes[0].DiscountType)
	assert.True(t, codes[0].DiscountValue.Equal(dec("15")))
	<-reqs

	created, err := c.CreatePromoCode(ctx, "jwt", &promo.Code{
		Code: "FLAT5", DiscountType: promo.DiscountFixed, DiscountValue: dec("5"),
		MinOrderAmount: dec("20"), UsageLimit: 100, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "pc2", created.ID)
	assert.Equal(t, 100, created.UsageLimit)
	post := <-reqs
	assert.JSONEq(t, `{"code":"FLAT5","discountType":"fixed","discountValue":5,"minOrderAmount":20,"usageLimit":100,"isActive":true}`, string(post.body))

	require.NoError(t, c.DeletePromoCode(ctx, "jwt", "pc2"))
	assert.Equal(t, http.MethodDelete, (<-reqs).method)

	err = c.DeletePromoCode(ctx, "jwt", "missing")
	assert.ErrorIs(t, err, domainErrors.ErrPromoCodeNotFound)
}
