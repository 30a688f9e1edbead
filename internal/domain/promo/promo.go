package promo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// Code is a promo code persisted by the API and managed from the admin console.
type Code struct {
	ID             string          `json:"id,omitempty"`
	Code           string          `json:"code"`
	DiscountType   DiscountType    `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
	MinOrderAmount decimal.Decimal `json:"minOrderAmount"`
	UsageLimit     int             `json:"usageLimit,omitempty"`
	UsedCount      int             `json:"usedCount,omitempty"`
	IsActive       bool            `json:"isActive"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
}

func (c *Code) Normalize() {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
}

func (c *Code) Validate(now time.Time) error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", domainErrors.ErrInvalidPromoDefinition)
	}

	switch c.DiscountType {
	case DiscountPercentage:
		if c.DiscountValue.GreaterThan(hundred) {
			return fmt.Errorf("%w: percentage cannot exceed 100", domainErrors.ErrInvalidPromoDefinition)
		}
	case DiscountFixed:
	default:
		return fmt.Errorf("%w: unknown discount type %q", domainErrors.ErrInvalidPromoDefinition, c.DiscountType)
	}

	if !c.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discount value must be greater than zero", domainErrors.ErrInvalidPromoDefinition)
	}

	if c.MinOrderAmount.IsNegative() {
		return fmt.Errorf("%w: minimum order amount cannot be negative", domainErrors.ErrInvalidPromoDefinition)
	}

	if c.UsageLimit < 0 {
		return fmt.Errorf("%w: usage limit cannot be negative", domainErrors.ErrInvalidPromoDefinition)
	}

	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return fmt.Errorf("%w: expiry must be in the future", domainErrors.ErrInvalidPromoDefinition)
	}

	return nil
}
