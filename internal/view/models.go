package view

import "github.com/blueleafbooks/storefront/internal/domain"

// CartRow is one displayable cart line: the book plus its discounted price
// when a coupon covers it.
type CartRow struct {
	Book            domain.Book
	Discounted      bool
	DiscountedCents int64
}

// CartRows pairs each validated cart book with its per-item discount, if any.
func CartRows(books []domain.Book, coupon *domain.Discount) []CartRow {
	rows := make([]CartRow, 0, len(books))
	for _, b := range books {
		row := CartRow{Book: b}
		if item, ok := coupon.ItemFor(b.ID); ok {
			row.Discounted = true
			row.DiscountedCents = item.PriceCents
		}
		rows = append(rows, row)
	}
	return rows
}

// CartPage is the cart template model.
type CartPage struct {
	Rows   []CartRow
	Coupon *domain.Discount
	Totals domain.Totals
}

// CheckoutPage is the checkout template model.
type CheckoutPage struct {
	Rows        []CartRow
	Coupon      *domain.Discount
	Totals      domain.Totals
	PayPalStart string
}
