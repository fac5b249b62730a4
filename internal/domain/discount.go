package domain

// Discount is a server-confirmed coupon application result. It exists only
// between a successful apply call and the next cart mutation; the client never
// computes discounts itself.
type Discount struct {
	Code        string         `json:"code"`
	Percentage  float64        `json:"percentage"`
	AmountCents int64          `json:"amount_cents"`
	Items       []ItemDiscount `json:"items"`
}

// ItemDiscount is the per-book portion of a discount.
type ItemDiscount struct {
	BookID      string `json:"book_id"`
	PriceCents  int64  `json:"price_cents"` // discounted price
	AmountCents int64  `json:"amount_cents"`
}

// ItemFor returns the per-book discount entry for the given book, if any.
func (d *Discount) ItemFor(bookID string) (ItemDiscount, bool) {
	if d == nil {
		return ItemDiscount{}, false
	}
	for _, it := range d.Items {
		if it.BookID == bookID {
			return it, true
		}
	}
	return ItemDiscount{}, false
}

// ItemizedTotal sums the per-book discount amounts for books that are actually
// in the validated cart. Entries for unknown identifiers are ignored.
func (d *Discount) ItemizedTotal(books []Book) int64 {
	if d == nil {
		return 0
	}

	inCart := make(map[string]struct{}, len(books))
	for _, b := range books {
		inCart[b.ID] = struct{}{}
	}

	var total int64
	for _, it := range d.Items {
		if _, ok := inCart[it.BookID]; ok {
			total += it.AmountCents
		}
	}
	return total
}

// Totals is the displayed price breakdown for a validated cart.
type Totals struct {
	SubtotalCents int64
	DiscountCents int64
	TotalCents    int64
}

// ComputeTotals derives the displayed totals: subtotal is the sum of validated
// book prices, discount is the server-confirmed aggregate amount (0 when no
// coupon is applied), total is their difference. The discount is trusted as
// already bounded by the subtotal; no clamping is performed here.
func ComputeTotals(books []Book, d *Discount) Totals {
	t := Totals{SubtotalCents: Subtotal(books)}
	if d != nil {
		t.DiscountCents = d.AmountCents
	}
	t.TotalCents = t.SubtotalCents - t.DiscountCents
	return t
}
