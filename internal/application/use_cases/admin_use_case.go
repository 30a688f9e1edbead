package use_cases

import (
	"context"
	"fmt"

	"github.com/yuzvak/storefront-service/internal/application/ports"
	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
	"github.com/yuzvak/storefront-service/internal/domain/order"
	"github.com/yuzvak/storefront-service/internal/domain/promo"
	"github.com/yuzvak/storefront-service/internal/pkg/clock"
	"github.com/yuzvak/storefront-service/internal/pkg/logger"
)

// AdminUseCase proxies the back-office operations for a logged-in admin.
type AdminUseCase struct {
	session ports.SessionReader
	admin   ports.AdminAPI
	clock   clock.Clock
	log     *logger.Logger
}

func NewAdminUseCase(session ports.SessionReader, admin ports.AdminAPI, clk clock.Clock, log *logger.Logger) *AdminUseCase {
	return &AdminUseCase{
		session: session,
		admin:   admin,
		clock:   clk,
		log:     log,
	}
}

// Authorize returns the session token when the stored user is an admin.
func (uc *AdminUseCase) Authorize(ctx context.Context) (string, error) {
	token, err := uc.session.Token(ctx)
	if err != nil {
		uc.log.Error("Failed to read session token", "error", err)
		return "", domainErrors.ErrNotAuthenticated
	}
	if token == "" {
		return "", domainErrors.ErrNotAuthenticated
	}

	user, err := uc.session.User(ctx)
	if err != nil {
		uc.log.Warn("Failed to read session user", "error", err)
		return "", domainErrors.ErrForbidden
	}
	if !user.IsAdmin() {
		return "", domainErrors.ErrForbidden
	}

	return token, nil
}

func (uc *AdminUseCase) ListOrders(ctx context.Context) ([]order.Order, error) {
	token, err := uc.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	return uc.admin.ListOrders(ctx, token)
}

func (uc *AdminUseCase) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domainErrors.ErrInvalidOrderStatus, status)
	}

	token, err := uc.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := uc.admin.UpdateOrderStatus(ctx, token, orderID, status)
	if err != nil {
		return nil, err
	}

	uc.log.Info("Order status updated", "order_id", orderID, "status", string(status))
	return updated, nil
}

func (uc *AdminUseCase) ListPromoCodes(ctx context.Context) ([]promo.Code, error) {
	token, err := uc.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	return uc.admin.ListPromoCodes(ctx, token)
}

func (uc *AdminUseCase) CreatePromoCode(ctx context.Context, code promo.Code) (*promo.Code, error) {
	code.Normalize()
	if err := code.Validate(uc.clock.Now()); err != nil {
		return nil, err
	}

	token, err := uc.Authorize(ctx)
	if err != nil {
		return nil, err
	}

	created, err := uc.admin.CreatePromoCode(ctx, token, &code)
	if err != nil {
		return nil, err
	}

	uc.log.Info("Promo code created", "code", created.Code, "id", created.ID)
	return created, nil
}

func (uc *AdminUseCase) DeletePromoCode(ctx context.Context, id string) error {
	token, err := uc.Authorize(ctx)
	if err != nil {
		return err
	}

	if err := uc.admin.DeletePromoCode(ctx, token, id); err != nil {
		return err
	}

	uc.log.Info("Promo code deleted", "id", id)
	return nil
}
