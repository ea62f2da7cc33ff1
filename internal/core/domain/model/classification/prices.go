package classification

import "packhouse/internal/core/domain/model/kernel"

// Prices holds the unit price of each category. Unset categories are priced at zero.
type Prices struct {
	byCategory map[Category]kernel.Price
}

// NewPrices builds the price list in XL, L, M, S order.
func NewPrices(xl, l, m, s kernel.Price) Prices {
	return Prices{byCategory: map[Category]kernel.Price{
		XL: xl,
		L:  l,
		M:  m,
		S:  s,
	}}
}

// For returns the unit price of c, zero when unknown.
func (p Prices) For(c Category) kernel.Price {
	return p.byCategory[c]
}

// With returns a copy of p with the price of c replaced.
func (p Prices) With(c Category, price kernel.Price) Prices {
	out := Prices{byCategory: make(map[Category]kernel.Price, len(Categories()))}
	for k, v := range p.byCategory {
		out.byCategory[k] = v
	}
	out.byCategory[c] = price
	return out
}
