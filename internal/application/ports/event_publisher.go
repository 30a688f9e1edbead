package ports

import (
	"context"

	"github.com/yuzvak/storefront-service/internal/domain/order"
)

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, evt *order.Placed) error
	Close() error
}
