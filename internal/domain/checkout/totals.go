package checkout

import (
	"github.com/shopspring/decimal"
)

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	PromoCode string          `json:"promoCode,omitempty"`
}

// ComputeTotal is subtotal + shipping + tax - discount. It neither rounds nor clamps.
func ComputeTotal(subtotal, shipping, tax, discount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Add(tax).Sub(discount)
}

// DisplayTotals is Totals formatted to two decimals for presentation.
type DisplayTotals struct {
	Subtotal  string `json:"subtotal"`
	Shipping  string `json:"shipping"`
	Tax       string `json:"tax"`
	Discount  string `json:"discount"`
	Total     string `json:"total"`
	PromoCode string `json:"promoCode,omitempty"`
}

func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal:  t.Subtotal.StringFixed(2),
		Shipping:  t.Shipping.StringFixed(2),
		Tax:       t.Tax.StringFixed(2),
		Discount:  t.Discount.StringFixed(2),
		Total:     t.Total.StringFixed(2),
		PromoCode: t.PromoCode,
	}
}

type Calculator struct {
	shipping  decimal.Decimal
	tax       decimal.Decimal
	promotion *Promotion
}

func NewCalculator(shipping, tax decimal.Decimal, promotion *Promotion) *Calculator {
	return &Calculator{
		shipping:  shipping,
		tax:       tax,
		promotion: promotion,
	}
}

func (c *Calculator) Shipping() decimal.Decimal {
	return c.shipping
}

func (c *Calculator) Tax() decimal.Decimal {
	return c.tax
}

func (c *Calculator) ApplyPromoCode(code string) error {
	return c.promotion.Apply(code)
}

func (c *Calculator) RemovePromoCode() {
	c.promotion.Remove()
}

func (c *Calculator) Totals(subtotal decimal.Decimal) Totals {
	discount := c.promotion.Discount()
	return Totals{
		Subtotal:  subtotal,
		Shipping:  c.shipping,
		Tax:       c.tax,
		Discount:  discount,
		Total:     ComputeTotal(subtotal, c.shipping, c.tax, discount),
		PromoCode: c.promotion.AppliedCode(),
	}
}
