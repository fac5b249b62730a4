package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/blueleafbooks/storefront/internal/domain"
)

type authorSummaryDTO struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BookCount    int       `json:"bookCount"`
	TotalSales   int       `json:"totalSales"`
	Earnings     float64   `json:"earnings"`
	RegisteredAt time.Time `json:"createdAt"`
}

func (d authorSummaryDTO) toDomain() domain.AuthorSummary {
	return domain.AuthorSummary{
		ID:            d.ID,
		Name:          d.Name,
		Email:         d.Email,
		BookCount:     d.BookCount,
		TotalSales:    d.TotalSales,
		EarningsCents: dollarsToCents(d.Earnings),
		RegisteredAt:  d.RegisteredAt,
	}
}

// AdminBooks lists the entire catalog for moderation, including pending,
// rejected, and soft-deleted books.
func (c *Client) AdminBooks(ctx context.Context, token string) ([]domain.Book, error) {
	var dtos []bookDTO
	if err := c.do(ctx, http.MethodGet, "/admin/books", token, nil, &dtos); err != nil {
		return nil, err
	}
	return booksToDomain(dtos), nil
}

// AdminAuthors lists every registered author with sales rollups.
func (c *Client) AdminAuthors(ctx context.Context, token string) ([]domain.AuthorSummary, error) {
	var dtos []authorSummaryDTO
	if err := c.do(ctx, http.MethodGet, "/admin/authors", token, nil, &dtos); err != nil {
		return nil, err
	}
	authors := make([]domain.AuthorSummary, 0, len(dtos))
	for _, d := range dtos {
		authors = append(authors, d.toDomain())
	}
	return authors, nil
}

// AdminOrders lists every order on the platform, newest first.
func (c *Client) AdminOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, "/admin/orders", token, nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos), nil
}

// AdminEarnings fetches the platform earnings summary.
func (c *Client) AdminEarnings(ctx context.Context, token string) (*domain.Earnings, error) {
	var resp struct {
		TotalEarnings float64 `json:"totalEarnings"`
		MonthEarnings float64 `json:"monthEarnings"`
		TotalOrders   int     `json:"totalOrders"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/earnings", token, nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Earnings{
		TotalEarningsCents: dollarsToCents(resp.TotalEarnings),
		MonthEarningsCents: dollarsToCents(resp.MonthEarnings),
		TotalOrders:        resp.TotalOrders,
	}, nil
}

// UpdateBookStatus approves or rejects a pending book.
func (c *Client) UpdateBookStatus(ctx context.Context, token, bookID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/admin/books/"+url.PathEscape(bookID)+"/status", token, body, nil)
}

// AdminDeleteBook removes any book from the catalog.
func (c *Client) AdminDeleteBook(ctx context.Context, token, bookID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/books/"+url.PathEscape(bookID), token, nil, nil)
}

type payoutDTO struct {
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	PayPalEmail string    `json:"paypalEmail"`
	Amount      float64   `json:"amount"`
	Paid        bool      `json:"paid"`
	PaidAt      time.Time `json:"paidAt"`
}

// AdminPayouts lists outstanding and settled author payouts.
func (c *Client) AdminPayouts(ctx context.Context, token string) ([]domain.Payout, error) {
	var dtos []payoutDTO
	if err := c.do(ctx, http.MethodGet, "/admin/payouts", token, nil, &dtos); err != nil {
		return nil, err
	}
	payouts := make([]domain.Payout, 0, len(dtos))
	for _, d := range dtos {
		payouts = append(payouts, domain.Payout{
			AuthorID:    d.AuthorID,
			AuthorName:  d.AuthorName,
			PayPalEmail: d.PayPalEmail,
			AmountCents: dollarsToCents(d.Amount),
			Paid:        d.Paid,
			PaidAt:      d.PaidAt,
		})
	}
	return payouts, nil
}

// MarkPayoutPaid records that an author payout has been sent.
func (c *Client) MarkPayoutPaid(ctx context.Context, token, authorID string) error {
	return c.do(ctx, http.MethodPost, "/admin/payouts/"+url.PathEscape(authorID)+"/paid", token, nil, nil)
}

type couponDTO struct {
	ID         string  `json:"_id"`
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage"`
	Active     bool    `json:"active"`
	UsageCount int     `json:"usageCount"`
}

// AdminCoupons lists every coupon definition.
func (c *Client) AdminCoupons(ctx context.Context, token string) ([]domain.Coupon, error) {
	var dtos []couponDTO
	if err := c.do(ctx, http.MethodGet, "/admin/coupons", token, nil, &dtos); err != nil {
		return nil, err
	}
	coupons := make([]domain.Coupon, 0, len(dtos))
	for _, d := range dtos {
		coupons = append(coupons, domain.Coupon{
			ID:         d.ID,
			Code:       d.Code,
			Percentage: d.Percentage,
			Active:     d.Active,
			UsageCount: d.UsageCount,
		})
	}
	return coupons, nil
}

// CreateCoupon registers a new discount code.
func (c *Client) CreateCoupon(ctx context.Context, token, code string, percentage float64) (*domain.Coupon, error) {
	body := map[string]any{"code": code, "percentage": percentage}
	var dto couponDTO
	if err := c.do(ctx, http.MethodPost, "/admin/coupons", token, body, &dto); err != nil {
		return nil, err
	}
	return &domain.Coupon{
		ID:         dto.ID,
		Code:       dto.Code,
		Percentage: dto.Percentage,
		Active:     dto.Active,
		UsageCount: dto.UsageCount,
	}, nil
}

// ToggleCoupon flips a coupon between active and inactive.
func (c *Client) ToggleCoupon(ctx context.Context, token, couponID string) error {
	return c.do(ctx, http.MethodPatch, "/admin/coupons/"+url.PathEscape(couponID)+"/toggle", token, nil, nil)
}

// DeleteCoupon removes a coupon definition.
func (c *Client) DeleteCoupon(ctx context.Context, token, couponID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/coupons/"+url.PathEscape(couponID), token, nil, nil)
}
