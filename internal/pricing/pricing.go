package pricing

// Line is a single cart or order line priced in whole baht.
type Line struct {
	UnitPrice int
	Quantity  int
}

// Totals aggregates the order-level amounts derived from lines.
type Totals struct {
	Subtotal    int `json:"subtotal"`
	ShippingFee int `json:"shipping_fee"`
	Total       int `json:"total"`
	TotalItems  int `json:"total_items"`
}

// LineTotal returns the extended amount for a single line.
func LineTotal(line Line) int {
	if line.Quantity <= 0 || line.UnitPrice <= 0 {
		return 0
	}
	return line.UnitPrice * line.Quantity
}

// Compute derives totals from the provided lines. The shipping fee is a flat
// amount applied regardless of cart contents, so an empty cart still totals to
// the fee alone.
func Compute(lines []Line, shippingFee int) Totals {
	totals := Totals{}
	for _, line := range lines {
		totals.Subtotal += LineTotal(line)
		if line.Quantity > 0 {
			totals.TotalItems += line.Quantity
		}
	}
	if shippingFee > 0 {
		totals.ShippingFee = shippingFee
	}
	totals.Total = totals.Subtotal + totals.ShippingFee
	return totals
}
