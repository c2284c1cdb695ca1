package domain

// ShippingPolicy decides the delivery fee for an order. Orders whose
// subtotal is strictly above FreeThreshold ship for free.
type ShippingPolicy struct {
	Fee           float64
	FreeThreshold float64
}

// Totals is the priced breakdown of a checkout.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives shipping and total from a cart subtotal.
func (p ShippingPolicy) ComputeTotals(subtotal float64) Totals {
	if subtotal <= 0 {
		return Totals{}
	}
	shipping := p.Fee
	if subtotal > p.FreeThreshold {
		shipping = 0
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
