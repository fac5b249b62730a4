package api

import (
	"context"
	"net/http"

	"github.com/blueleafbooks/storefront/internal/domain"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

type couponResponse struct {
	Success            bool    `json:"success"`
	Message            string  `json:"message"`
	DiscountCode       string  `json:"discountCode"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountAmount     float64 `json:"discountAmount"`
	DiscountedItems    []struct {
		BookID          string  `json:"bookId"`
		DiscountedPrice float64 `json:"discountedPrice"`
		DiscountAmount  float64 `json:"discountAmount"`
	} `json:"discountedItems"`
}

// ApplyCoupon validates a coupon code against the books in the cart. A
// response the backend marks unsuccessful comes back as an upstream error
// carrying the backend's rejection message.
func (c *Client) ApplyCoupon(ctx context.Context, token, code string, bookIDs []string) (*domain.Discount, error) {
	body := map[string]any{
		"code":    code,
		"bookIds": bookIDs,
	}

	var resp couponResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/apply-coupon", token, body, &resp); err != nil {
		return nil, err
	}

	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "This coupon code is not valid"
		}
		return nil, apperrors.Upstream(http.StatusUnprocessableEntity, msg)
	}

	discount := &domain.Discount{
		Code:        resp.DiscountCode,
		Percentage:  resp.DiscountPercentage,
		AmountCents: dollarsToCents(resp.DiscountAmount),
	}
	for _, item := range resp.DiscountedItems {
		discount.Items = append(discount.Items, domain.ItemDiscount{
			BookID:      item.BookID,
			PriceCents:  dollarsToCents(item.DiscountedPrice),
			AmountCents: dollarsToCents(item.DiscountAmount),
		})
	}
	return discount, nil
}
