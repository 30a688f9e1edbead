package use_cases

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
)

type memCartStorage struct {
	mu      sync.Mutex
	items   []cart.LineItem
	loadErr error
	saveErr error
	saves   int
}

func (s *memCartStorage) Load(ctx context.Context) ([]cart.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]cart.LineItem(nil), s.items...), nil
}

func (s *memCartStorage) Save(ctx context.Context, items []cart.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.items = append([]cart.LineItem(nil), items...)
	return nil
}

func (s *memCartStorage) stored() []cart.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]cart.LineItem(nil), s.items...)
}

type fakeSession struct {
	token    string
	tokenErr error
	user     *ports.SessionUser
	userErr  error
}

func (s *fakeSession) Token(ctx context.Context) (string, error) {
	return s.token, s.tokenErr
}

func (s *fakeSession) User(ctx context.Context) (*ports.SessionUser, error) {
	return s.user, s.userErr
}

type fakeOrderAPI struct {
	mu        sync.Mutex
	createFn  func(ctx context.Context, token string, req *checkout.OrderRequest) (string, error)
	getFn     func(ctx context.Context, token, orderID string) (*order.Order, error)
	requests  []*checkout.OrderRequest
	lastToken string
}

func (a *fakeOrderAPI) CreateOrder(ctx context.Context, token string, req *checkout.OrderRequest) (string, error) {
	a.mu.Lock()
	a.requests = append(a.requests, req)
	a.lastToken = token
	a.mu.Unlock()

	if a.createFn != nil {
		return a.createFn(ctx, token, req)
	}
	return "order-1", nil
}

func (a *fakeOrderAPI) GetOrder(ctx context.Context, token, orderID string) (*order.Order, error) {
	if a.getFn != nil {
		return a.getFn(ctx, token, orderID)
	}
	return &order.Order{ID: orderID, Status: order.StatusPending}, nil
}

func (a *fakeOrderAPI) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.requests)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*order.Placed
	err    error
}

func (p *fakePublisher) PublishOrderPlaced(ctx context.Context, evt *order.Placed) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, evt)
	return p.err
}

func (p *fakePublisher) Close() error {
	return nil
}

type fakeAdminAPI struct {
	orders     []order.Order
	promoCodes []promo.Code
	err        error
	lastToken  string
	lastStatus order.Status
	created    *promo.Code
	deletedID  string
}

func (a *fakeAdminAPI) ListOrders(ctx context.Context, token string) ([]order.Order, error) {
	a.lastToken = token
	return a.orders, a.err
}

func (a *fakeAdminAPI) UpdateOrderStatus(ctx context.Context, token, orderID string, status order.Status) (*order.Order, error) {
	a.lastToken = token
	a.lastStatus = status
	if a.err != nil {
		return nil, a.err
	}
	return &order.Order{ID: orderID, Status: status}, nil
}

func (a *fakeAdminAPI) ListPromoCodes(ctx context.Context, token string) ([]promo.Code, error) {
	a.lastToken = token
	return a.promoCodes, a.err
}

func (a *fakeAdminAPI) CreatePromoCode(ctx context.Context, token string, code *promo.Code) (*promo.Code, error) {
	a.lastToken = token
	if a.err != nil {
		return nil, a.err
	}
	created := *code
	created.ID = "pc-1"
	a.created = &created
	return &created, nil
}

func (a *fakeAdminAPI) DeletePromoCode(ctx context.Context, token, id string) error {
	a.lastToken = token
	a.deletedID = id
	return a.err
}

type fixedIDs struct{}

func (fixedIDs) RequestID() string { return "req-1" }
func (fixedIDs) EventID() string   { return "evt-1" }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id, price string) cart.Product {
	p := cart.Product{ID: id, Name: "Product " + id, Image: id + ".png"}
	if price != "" {
		p.Price = decimal.NewNullDecimal(dec(price))
	}
	return p
}

func completeForm() checkout.ShippingForm {
	return checkout.ShippingForm{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "555-0100",
		Address:   "12 Analytical Way",
		City:      "London",
		State:     "LDN",
		ZipCode:   "10001",
	}
}
