package checkout

// Shipping is free strictly above the threshold, otherwise a flat fee.
// The cart summary and the checkout summary both quote through here so
// the rule cannot drift.
const (
	FreeShippingThreshold = 4999
	FlatShippingFee       = 99
)

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

func QuoteFor(subtotal float64) Quote {
	shipping := float64(FlatShippingFee)
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
