package domain

import "time"

// FeePeriod is one calendar month of the author platform fee, computed
// entirely by the backend. The storefront only displays it.
type FeePeriod struct {
	Period   string    `json:"period"` // e.g. "2026-07"
	FeeCents int64     `json:"fee_cents"`
	DueDate  time.Time `json:"due_date"`
	Overdue  bool      `json:"overdue"`
	Paid     bool      `json:"paid"`
}

// AuthorDashboard is the backend's author overview: KPIs, trial window, and
// the last/current platform fee periods.
type AuthorDashboard struct {
	BookCount           int       `json:"book_count"`
	TotalSales          int       `json:"total_sales"`
	TotalEarningsCents  int64     `json:"total_earnings_cents"`
	UnpaidEarningsCents int64     `json:"unpaid_earnings_cents"`
	AdminPaymentEmail   string    `json:"admin_payment_email"`
	InTrial             bool      `json:"in_trial"`
	TrialEndsAt         time.Time `json:"trial_ends_at"`
	DaysUntilFee        int       `json:"days_until_fee"`
	LastMonth           FeePeriod `json:"last_month"`
	CurrentMonth        FeePeriod `json:"current_month"`
	Books               []Book    `json:"books"`
}

// PayoutSettings holds the author's payout destination.
type PayoutSettings struct {
	PayPalEmail string `json:"paypal_email"`
}

// AuthorSummary is an author row in admin views.
type AuthorSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	BookCount     int       `json:"book_count"`
	TotalSales    int       `json:"total_sales"`
	EarningsCents int64     `json:"earnings_cents"`
	RegisteredAt  time.Time `json:"registered_at"`
}
