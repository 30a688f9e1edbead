package use_cases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type CartSnapshot struct {
	Items     []cart.LineItem `json:"items"`
	IsOpen    bool            `json:"isOpen"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	ItemCount int             `json:"itemCount"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// CartStore owns the shopper's cart. Every mutation except ToggleCart writes the
// full item list back to storage; the in-memory cart stays authoritative when
// that write fails.
type CartStore struct {
	mu       sync.RWMutex
	cart     *cart.Cart
	storage  ports.CartStorage
	shipping decimal.Decimal
	log      *logger.Logger
}

// NewCartStore hydrates from storage. Missing or unreadable data starts an empty cart.
func NewCartStore(ctx context.Context, storage ports.CartStorage, shipping decimal.Decimal, log *logger.Logger) *CartStore {
	items, err := storage.Load(ctx)
	if err != nil {
		if errors.Is(err, domainErrors.ErrCorruptCart) {
			log.Warn("Stored cart is corrupt, starting with an empty cart", "error", err)
		} else {
			log.Warn("Failed to load stored cart, starting with an empty cart", "error", err)
		}
		items = nil
	}

	s := &CartStore{
		cart:     cart.New(items),
		storage:  storage,
		shipping: shipping,
		log:      log,
	}
	s.updateGauges()

	log.Info("Cart loaded", "lines", len(s.cart.Items()), "item_count", s.cart.ItemCount())
	return s
}

func (s *CartStore) mutate(ctx context.Context, operation string, fn func(c *cart.Cart)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.cart)
	monitoring.RecordCartMutation(operation)
	s.updateGauges()

	if err := s.storage.Save(ctx, s.cart.Items()); err != nil {
		monitoring.RecordCartPersistFailure()
		s.log.Error("Failed to persist cart", "error", err, "operation", operation)
		return fmt.Errorf("%w: %v", domainErrors.ErrCartPersistence, err)
	}
	return nil
}

func (s *CartStore) updateGauges() {
	monitoring.UpdateCartGauges(s.cart.ItemCount(), s.cart.Subtotal().InexactFloat64())
}

func (s *CartStore) AddToCart(ctx context.Context, product cart.Product) error {
	return s.mutate(ctx, "add", func(c *cart.Cart) {
		c.Add(product)
	})
}

func (s *CartStore) RemoveFromCart(ctx context.Context, productID string) error {
	return s.mutate(ctx, "remove", func(c *cart.Cart) {
		c.Remove(productID)
	})
}

// UpdateQuantity sets an absolute quantity; values below one are ignored.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	return s.mutate(ctx, "update_quantity", func(c *cart.Cart) {
		c.SetQuantity(productID, quantity)
	})
}

func (s *CartStore) IncrementQuantity(ctx context.Context, productID string) error {
	return s.mutate(ctx, "increment", func(c *cart.Cart) {
		c.Increment(productID)
	})
}

func (s *CartStore) DecrementQuantity(ctx context.Context, productID string) error {
	return s.mutate(ctx, "decrement", func(c *cart.Cart) {
		c.Decrement(productID)
	})
}

func (s *CartStore) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, "clear", func(c *cart.Cart) {
		c.Clear()
	})
}

// RemoveOrdered deducts lines that were submitted in an order. Items added while
// the order was in flight stay in the cart.
func (s *CartStore) RemoveOrdered(ctx context.Context, ordered []cart.LineItem) error {
	return s.mutate(ctx, "clear", func(c *cart.Cart) {
		c.Deduct(ordered)
	})
}

// ToggleCart flips panel visibility. Visibility is never persisted.
func (s *CartStore) ToggleCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Toggle()
}

func (s *CartStore) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.IsOpen()
}

func (s *CartStore) Items() []cart.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.Items()
}

func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.Subtotal()
}

func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cart.ItemCount()
}

func (s *CartStore) Shipping() decimal.Decimal {
	return s.shipping
}

// Total is subtotal plus shipping. Tax and promotions belong to checkout.
func (s *CartStore) Total() decimal.Decimal {
	return s.Subtotal().Add(s.shipping)
}

func (s *CartStore) Snapshot() CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := s.cart.Subtotal()
	return CartSnapshot{
		Items:     s.cart.Items(),
		IsOpen:    s.cart.IsOpen(),
		Subtotal:  subtotal,
		ItemCount: s.cart.ItemCount(),
		Shipping:  s.shipping,
		Total:     subtotal.Add(s.shipping),
	}
}
