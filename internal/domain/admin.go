package domain

import "time"

// Earnings is the platform-wide earnings summary shown on the admin dashboard.
type Earnings struct {
	TotalEarningsCents int64 `json:"total_earnings_cents"`
	MonthEarningsCents int64 `json:"month_earnings_cents"`
	TotalOrders        int   `json:"total_orders"`
}

// Payout is an outstanding or settled author payout.
type Payout struct {
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	PayPalEmail string    `json:"paypal_email"`
	AmountCents int64     `json:"amount_cents"`
	Paid        bool      `json:"paid"`
	PaidAt      time.Time `json:"paid_at"`
}

// Coupon is an admin-managed discount code definition.
type Coupon struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage"`
	Active     bool    `json:"active"`
	UsageCount int     `json:"usage_count"`
}

// AdminDashboard aggregates the four admin overview resources. All four loads
// must succeed; a partial dashboard is never rendered.
type AdminDashboard struct {
	Books    []Book
	Authors  []AuthorSummary
	Orders   []Order
	Earnings Earnings
}

// PendingBooks returns the books awaiting moderation.
func (d *AdminDashboard) PendingBooks() []Book {
	var pending []Book
	for _, b := range d.Books {
		if b.Status == BookStatusPending && !b.IsDeleted {
			pending = append(pending, b)
		}
	}
	return pending
}
