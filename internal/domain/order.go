package domain

import "time"

// Order payment status constants.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Order is a backend order record.
type Order struct {
	ID            string      `json:"id"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total_cents"`
	DiscountCode  string      `json:"discount_code,omitempty"`
	PaymentStatus string      `json:"payment_status"`
	PaymentMethod string      `json:"payment_method"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem is a single purchased book within an order.
type OrderItem struct {
	Book       *Book `json:"book"`
	PriceCents int64 `json:"price_cents"`
}

// PurchasedBook is a library entry: a book from a completed order.
type PurchasedBook struct {
	Book        Book
	OrderID     string
	PurchasedAt time.Time
}

// Library extracts the purchased books from the given orders. Only items of
// completed orders count; items without a resolvable book are skipped.
func Library(orders []Order) []PurchasedBook {
	var library []PurchasedBook
	for _, o := range orders {
		if o.PaymentStatus != PaymentStatusCompleted {
			continue
		}
		for _, item := range o.Items {
			if item.Book == nil {
				continue
			}
			library = append(library, PurchasedBook{
				Book:        *item.Book,
				OrderID:     o.ID,
				PurchasedAt: o.CreatedAt,
			})
		}
	}
	return library
}
