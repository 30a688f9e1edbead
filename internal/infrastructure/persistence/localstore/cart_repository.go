package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

// CartRepository keeps the cart as a JSON array of line items under one key.
type CartRepository struct {
	store ports.LocalStorage
	key   string
}

func NewCartRepository(store ports.LocalStorage, key string) *CartRepository {
	return &CartRepository{
		store: store,
		key:   key,
	}
}

// Load returns nil with no error when nothing has been saved yet. Data that is
// not a JSON array of line items yields ErrCorruptCart.
func (r *CartRepository) Load(ctx context.Context) ([]cart.LineItem, error) {
	raw, found, err := r.store.GetItem(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var items []cart.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrCorruptCart, err)
	}

	return items, nil
}

func (r *CartRepository) Save(ctx context.Context, items []cart.LineItem) error {
	if items == nil {
		items = []cart.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := r.store.SetItem(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
