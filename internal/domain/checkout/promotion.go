package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

// Promotion is the local flat-discount shortcut: a single literal code worth a
// fixed amount. Server-persisted promo codes live in the promo package and are
// not consulted here.
type Promotion struct {
	code     string
	amount   decimal.Decimal
	applied  bool
	discount decimal.Decimal
}

func NewPromotion(code string, amount decimal.Decimal) *Promotion {
	return &Promotion{
		code:     strings.ToUpper(strings.TrimSpace(code)),
		amount:   amount,
		discount: decimal.Zero,
	}
}

func (p *Promotion) Apply(code string) error {
	if p.applied {
		return domainErrors.ErrPromoAlreadyApplied
	}
	if p.code == "" || strings.ToUpper(strings.TrimSpace(code)) != p.code {
		return domainErrors.ErrInvalidPromoCode
	}

	p.applied = true
	p.discount = p.amount
	return nil
}

func (p *Promotion) Remove() {
	p.applied = false
	p.discount = decimal.Zero
}

func (p *Promotion) Applied() bool {
	return p.applied
}

func (p *Promotion) Discount() decimal.Decimal {
	return p.discount
}

func (p *Promotion) AppliedCode() string {
	if !p.applied {
		return ""
	}
	return p.code
}
