package api

import (
	"context"
	"net/http"
)

// PayPalOrder is the backend's handle on an in-flight PayPal payment. The
// storefront redirects the buyer to ApproveURL and captures on return.
type PayPalOrder struct {
	OrderID    string `json:"orderId"`
	ApproveURL string `json:"approveUrl"`
}

// CreatePayPalOrder asks the backend to open a PayPal payment for the cart.
// The discount code, when present, is revalidated server-side so the charged
// amount never trusts session state.
func (c *Client) CreatePayPalOrder(ctx context.Context, token string, bookIDs []string, discountCode string) (*PayPalOrder, error) {
	body := map[string]any{
		"bookIds":      bookIDs,
		"discountCode": discountCode,
	}
	var order PayPalOrder
	if err := c.do(ctx, http.MethodPost, "/paypal/create-order", token, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CapturePayPalOrder finalizes an approved PayPal payment and returns the
// resulting order ID.
func (c *Client) CapturePayPalOrder(ctx context.Context, token, paypalOrderID string) (string, error) {
	var resp struct {
		OrderID string `json:"orderId"`
	}
	body := map[string]string{"orderId": paypalOrderID}
	if err := c.do(ctx, http.MethodPost, "/paypal/capture-order", token, body, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}
