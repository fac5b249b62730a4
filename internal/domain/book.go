package domain

import "time"

// Book moderation status constants.
const (
	BookStatusPending  = "pending"
	BookStatusApproved = "approved"
	BookStatusRejected = "rejected"
)

// Book is a catalog book as known by the backend. Prices are in cents; the
// API layer converts from the backend's dollar floats at the decode boundary.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	AuthorID    string    `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	CoverURL    string    `json:"cover_url"`
	PDFURL      string    `json:"pdf_url"`
	Rating      float64   `json:"rating"`
	RatingCount int       `json:"rating_count"`
	SalesCount  int       `json:"sales_count"`
	Status      string    `json:"status"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
}

// Subtotal returns the sum of the given books' prices in cents.
func Subtotal(books []Book) int64 {
	var total int64
	for _, b := range books {
		total += b.PriceCents
	}
	return total
}

// BookIDs returns the identifiers of the given books, preserving order.
func BookIDs(books []Book) []string {
	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}
