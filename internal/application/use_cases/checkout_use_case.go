package use_cases

import (
	"context"
	"errors"
	"sync"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	"github.com/yuzvak/storefront-service/internal/domain/cart"
	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
	"github.com/yuzvak/storefront-service/internal/pkg/clock"
	"github.com/yuzvak/storefront-service/internal/pkg/generator"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

type CheckoutUseCase struct {
	cart       *CartStore
	calculator *checkout.Calculator
	session    ports.SessionReader
	orders     ports.OrderAPI
	publisher  ports.EventPublisher
	clock      clock.Clock
	ids        generator.IDGenerator
	log        *logger.Logger

	// mu guards the calculator; placeMu serialises order submissions.
	mu      sync.Mutex
	placeMu sync.Mutex
}

func NewCheckoutUseCase(
	cartStore *CartStore,
	calculator *checkout.Calculator,
	session ports.SessionReader,
	orders ports.OrderAPI,
	publisher ports.EventPublisher,
	clk clock.Clock,
	ids generator.IDGenerator,
	log *logger.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cart:       cartStore,
		calculator: calculator,
		session:    session,
		orders:     orders,
		publisher:  publisher,
		clock:      clk,
		ids:        ids,
		log:        log,
	}
}

func (uc *CheckoutUseCase) Summary() checkout.Totals {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.calculator.Totals(uc.cart.Subtotal())
}

func (uc *CheckoutUseCase) ApplyPromoCode(code string) (checkout.Totals, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.calculator.ApplyPromoCode(code); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrPromoAlreadyApplied):
			monitoring.RecordPromoApplication("already_applied")
		default:
			monitoring.RecordPromoApplication("invalid")
		}
		uc.log.Info("Promo code rejected", "code", code, "error", err.Error())
		return uc.calculator.Totals(uc.cart.Subtotal()), err
	}

	monitoring.RecordPromoApplication("applied")
	totals := uc.calculator.Totals(uc.cart.Subtotal())
	uc.log.Info("Promo code applied", "code", totals.PromoCode, "discount", totals.Discount.String())
	return totals, nil
}

func (uc *CheckoutUseCase) RemovePromoCode() checkout.Totals {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.calculator.RemovePromoCode()
	return uc.calculator.Totals(uc.cart.Subtotal())
}

func (uc *CheckoutUseCase) ValidateShipping(form checkout.ShippingForm) []string {
	return checkout.ValidateShippingForm(form)
}

// PlaceOrder submits the cart. Nothing is sent when the form is incomplete or the
// cart cannot be turned into an order. On API failure cart and promo are kept;
// on success the submitted lines are removed, the promo is reset and the
// server order id is returned.
func (uc *CheckoutUseCase) PlaceOrder(ctx context.Context, form checkout.ShippingForm) (string, error) {
	uc.placeMu.Lock()
	defer uc.placeMu.Unlock()

	if missing := checkout.ValidateShippingForm(form); len(missing) > 0 {
		return "", &checkout.MissingFieldsError{Fields: missing}
	}

	items := uc.cart.Items()
	if len(items) == 0 {
		return "", domainErrors.ErrEmptyCart
	}

	// Totals come from the same snapshot as the items so the payload stays
	// consistent while other requests mutate the cart.
	uc.mu.Lock()
	totals := uc.calculator.Totals(cart.New(items).Subtotal())
	uc.mu.Unlock()
	if totals.Total.IsNegative() {
		return "", domainErrors.ErrNegativeTotal
	}

	req, err := checkout.BuildOrderRequest(items, form, totals)
	if err != nil {
		return "", err
	}

	token, err := uc.session.Token(ctx)
	if err != nil {
		uc.log.Error("Failed to read session token", "error", err)
		return "", domainErrors.ErrNotAuthenticated
	}
	if token == "" {
		return "", domainErrors.ErrNotAuthenticated
	}

	orderID, err := uc.orders.CreateOrder(ctx, token, req)
	if err != nil {
		uc.log.Error("Order submission failed", "error", err, "items", len(req.Items), "total", totals.Total.String())
		return "", err
	}

	if err := uc.cart.RemoveOrdered(ctx, items); err != nil {
		uc.log.Warn("Order placed but cart could not be persisted as empty", "error", err, "order_id", orderID)
	}

	uc.mu.Lock()
	uc.calculator.RemovePromoCode()
	uc.mu.Unlock()

	evt := order.NewPlaced(uc.ids.EventID(), orderID, req, uc.clock.Now())
	if err := uc.publisher.PublishOrderPlaced(ctx, evt); err != nil {
		uc.log.Warn("Failed to publish order placed event", "error", err, "order_id", orderID)
	}

	uc.log.Info("Order placed",
		"order_id", orderID,
		"items", len(req.Items),
		"total", totals.Total.String(),
		"promo_code", totals.PromoCode,
	)

	return orderID, nil
}

// GetOrder fetches an order for the confirmation view. When ctx is cancelled the
// result is discarded even if the response already arrived.
func (uc *CheckoutUseCase) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	token, err := uc.session.Token(ctx)
	if err != nil {
		uc.log.Error("Failed to read session token", "error", err)
		return nil, domainErrors.ErrNotAuthenticated
	}
	if token == "" {
		return nil, domainErrors.ErrNotAuthenticated
	}

	o, err := uc.orders.GetOrder(ctx, token, orderID)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, err
	}

	return o, nil
}
