package dashboard

import (
	"context"

	"github.com/blueleafbooks/storefront/internal/domain"
)

// OrderHistory fetches the customer's orders.
type OrderHistory interface {
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
}

// CustomerView is the customer dashboard model: order history plus the
// library of purchased books derived from it.
type CustomerView struct {
	Orders  []domain.Order
	Library []domain.PurchasedBook
}

// LoadCustomer builds the customer dashboard. The library keeps only books
// from completed orders; an order item whose book the backend could not
// resolve is skipped rather than rendered as a hole.
func LoadCustomer(ctx context.Context, orders OrderHistory, token string) (*CustomerView, error) {
	history, err := orders.MyOrders(ctx, token)
	if err != nil {
		return nil, err
	}

	return &CustomerView{
		Orders:  history,
		Library: domain.Library(history),
	}, nil
}
