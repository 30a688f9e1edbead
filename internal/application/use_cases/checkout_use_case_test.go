package use_cases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuzvak/storefront-service/internal/domain/checkout"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/pkg/clock"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

var placedAt = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

type checkoutFixture struct {
	storage   *memCartStorage
	cart      *CartStore
	session   *fakeSession
	orders    *fakeOrderAPI
	publisher *fakePublisher
	uc        *CheckoutUseCase
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	return newCheckoutFixtureWithDiscount(t, "10.00")
}

func newCheckoutFixtureWithDiscount(t *testing.T, discount string) *checkoutFixture {
	t.Helper()
	log := logger.NewNop()

	f := &checkoutFixture{
		storage:   &memCartStorage{},
		session:   &fakeSession{token: "jwt-token"},
		orders:    &fakeOrderAPI{},
		publisher: &fakePublisher{},
	}
	f.cart = NewCartStore(context.Background(), f.storage, dec("5.00"), log)
	calculator := checkout.NewCalculator(dec("5.00"), dec("5.00"), checkout.NewPromotion("SAVE10", dec(discount)))
	f.uc = NewCheckoutUseCase(f.cart, calculator, f.session, f.orders, f.publisher, clock.NewMockClock(placedAt), fixedIDs{}, log)
	return f
}

func (f *checkoutFixture) add(t *testing.T, id, price string, qty int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.cart.AddToCart(ctx, product(id, price)))
	if qty > 1 {
		require.NoError(t, f.cart.UpdateQuantity(ctx, id, qty))
	}
}

func TestCheckoutUseCase_Summary(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 2)

	totals := f.uc.Summary()

	assert.True(t, totals.Subtotal.Equal(dec("20")))
	assert.True(t, totals.Shipping.Equal(dec("5")))
	assert.True(t, totals.Tax.Equal(dec("5")))
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(dec("30")))
	assert.Empty(t, totals.PromoCode)
}

func TestCheckoutUseCase_ApplyPromoCode(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 2)

	totals, err := f.uc.ApplyPromoCode(" save10 ")
	require.NoError(t, err)
	assert.True(t, totals.Discount.Equal(dec("10")))
	assert.True(t, totals.Total.Equal(dec("20")))
	assert.Equal(t, "SAVE10", totals.PromoCode)

	totals, err = f.uc.ApplyPromoCode("SAVE10")
	assert.ErrorIs(t, err, domainErrors.ErrPromoAlreadyApplied)
	assert.True(t, totals.Total.Equal(dec("20")), "discount is not stacked")

	_, err = f.uc.ApplyPromoCode("OTHER")
	assert.ErrorIs(t, err, domainErrors.ErrPromoAlreadyApplied)

	totals = f.uc.RemovePromoCode()
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(dec("30")))
}

func TestCheckoutUseCase_ApplyInvalidPromoCode(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 1)

	totals, err := f.uc.ApplyPromoCode("BOGUS")

	assert.ErrorIs(t, err, domainErrors.ErrInvalidPromoCode)
	assert.True(t, totals.Discount.IsZero())
	assert.True(t, totals.Total.Equal(dec("20")))
}

func TestCheckoutUseCase_PlaceOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 2)
	_, err := f.uc.ApplyPromoCode("SAVE10")
	require.NoError(t, err)

	orderID, err := f.uc.PlaceOrder(context.Background(), completeForm())

	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)

	require.Equal(t, 1, f.orders.calls())
	req := f.orders.requests[0]
	assert.Equal(t, "jwt-token", f.orders.lastToken)
	assert.Equal(t, completeForm(), req.ShippingInfo)
	assert.True(t, req.PaymentInfo.Subtotal.Equal(dec("20")))
	assert.True(t, req.PaymentInfo.Discount.Equal(dec("10")))
	assert.True(t, req.PaymentInfo.Total.Equal(dec("20")))
	assert.Equal(t, "SAVE10", req.PaymentInfo.PromoCode)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "p1", req.Items[0].Product)
	assert.Equal(t, 2, req.Items[0].Quantity)

	assert.Empty(t, f.cart.Items())
	assert.Empty(t, f.storage.stored())
	assert.True(t, f.uc.Summary().Discount.IsZero())

	require.Len(t, f.publisher.events, 1)
	evt := f.publisher.events[0]
	assert.Equal(t, "evt-1", evt.EventID)
	assert.Equal(t, order.PlacedEventType, evt.EventType)
	assert.Equal(t, "order-1", evt.OrderID)
	assert.Equal(t, placedAt, evt.Timestamp)
}

func TestCheckoutUseCase_PlaceOrderKeepsItemsAddedInFlight(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 1)
	f.orders.createFn = func(ctx context.Context, token string, req *checkout.OrderRequest) (string, error) {
		require.NoError(t, f.cart.AddToCart(ctx, product("p2", "4.00")))
		require.NoError(t, f.cart.AddToCart(ctx, product("p1", "10.00")))
		return "order-1", nil
	}

	_, err := f.uc.PlaceOrder(context.Background(), completeForm())
	require.NoError(t, err)

	req := f.orders.requests[0]
	require.Len(t, req.Items, 1)
	assert.Equal(t, 1, req.Items[0].Quantity)
	assert.True(t, req.PaymentInfo.Subtotal.Equal(dec("10")))
	assert.True(t, req.PaymentInfo.Total.Equal(dec("20")))

	items := f.cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ProductID)
	assert.Equal(t, items, f.storage.stored())
}

func TestCheckoutUseCase_PlaceOrderValidation(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.add(t, "p1", "10.00", 1)
		form := completeForm()
		form.Email = ""
		form.ZipCode = "   "

		_, err := f.uc.PlaceOrder(context.Background(), form)

		var missing *checkout.MissingFieldsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"email", "zipCode"}, missing.Fields)
		assert.ErrorIs(t, err, domainErrors.ErrMissingShippingFields)
		assert.Equal(t, 0, f.orders.calls())
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newCheckoutFixture(t)

		_, err := f.uc.PlaceOrder(context.Background(), completeForm())

		assert.ErrorIs(t, err, domainErrors.ErrEmptyCart)
		assert.Equal(t, 0, f.orders.calls())
	})

	t.Run("line without price", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.add(t, "free", "", 1)

		_, err := f.uc.PlaceOrder(context.Background(), completeForm())

		assert.ErrorIs(t, err, domainErrors.ErrInvalidCartLine)
		assert.Equal(t, 0, f.orders.calls())
		assert.Len(t, f.cart.Items(), 1)
	})

	t.Run("negative total", func(t *testing.T) {
		f := newCheckoutFixtureWithDiscount(t, "25.00")
		f.add(t, "cheap", "1.00", 1)
		_, err := f.uc.ApplyPromoCode("SAVE10")
		require.NoError(t, err)

		_, err = f.uc.PlaceOrder(context.Background(), completeForm())

		assert.ErrorIs(t, err, domainErrors.ErrNegativeTotal)
		assert.Equal(t, 0, f.orders.calls())
	})

	t.Run("not logged in", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.add(t, "p1", "10.00", 1)
		f.session.token = ""

		_, err := f.uc.PlaceOrder(context.Background(), completeForm())

		assert.ErrorIs(t, err, domainErrors.ErrNotAuthenticated)
		assert.Equal(t, 0, f.orders.calls())
	})

	t.Run("session unreadable", func(t *testing.T) {
		f := newCheckoutFixture(t)
		f.add(t, "p1", "10.00", 1)
		f.session.tokenErr = errors.New("disk error")

		_, err := f.uc.PlaceOrder(context.Background(), completeForm())

		assert.ErrorIs(t, err, domainErrors.ErrNotAuthenticated)
	})
}

func TestCheckoutUseCase_PlaceOrderAPIFailureKeepsState(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 2)
	_, err := f.uc.ApplyPromoCode("SAVE10")
	require.NoError(t, err)

	f.orders.createFn = func(ctx context.Context, token string, req *checkout.OrderRequest) (string, error) {
		return "", domainErrors.ErrOrderRejected
	}

	_, err = f.uc.PlaceOrder(context.Background(), completeForm())

	assert.ErrorIs(t, err, domainErrors.ErrOrderRejected)
	assert.Len(t, f.cart.Items(), 1)
	assert.Len(t, f.storage.stored(), 1)
	assert.Equal(t, "SAVE10", f.uc.Summary().PromoCode)
	assert.Empty(t, f.publisher.events)
}

func TestCheckoutUseCase_PlaceOrderPublishFailureIsIgnored(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 1)
	f.publisher.err = errors.New("broker down")

	orderID, err := f.uc.PlaceOrder(context.Background(), completeForm())

	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)
	assert.Empty(t, f.cart.Items())
}

func TestCheckoutUseCase_PlaceOrderCartPersistFailureIsIgnored(t *testing.T) {
	f := newCheckoutFixture(t)
	f.add(t, "p1", "10.00", 1)
	f.storage.saveErr = errors.New("quota exceeded")

	orderID, err := f.uc.PlaceOrder(context.Background(), completeForm())

	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)
	assert.Empty(t, f.cart.Items())
}

func TestCheckoutUseCase_GetOrder(t *testing.T) {
	f := newCheckoutFixture(t)

	o, err := f.uc.GetOrder(context.Background(), "order-9")

	require.NoError(t, err)
	assert.Equal(t, "order-9", o.ID)
}

func TestCheckoutUseCase_GetOrderRequiresToken(t *testing.T) {
	f := newCheckoutFixture(t)
	f.session.token = ""

	_, err := f.uc.GetOrder(context.Background(), "order-9")

	assert.ErrorIs(t, err, domainErrors.ErrNotAuthenticated)
}

func TestCheckoutUseCase_GetOrderDiscardsResultAfterCancel(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.orders.getFn = func(ctx context.Context, token, orderID string) (*order.Order, error) {
		cancel()
		return &order.Order{ID: orderID}, nil
	}

	o, err := f.uc.GetOrder(ctx, "order-9")

	assert.Nil(t, o)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckoutUseCase_GetOrderNotFound(t *testing.T) {
	f := newCheckoutFixture(t)
	f.orders.getFn = func(ctx context.Context, token, orderID string) (*order.Order, error) {
		return nil, domainErrors.ErrOrderNotFound
	}

	_, err := f.uc.GetOrder(context.Background(), "missing")

	assert.ErrorIs(t, err, domainErrors.ErrOrderNotFound)
}
