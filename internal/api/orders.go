package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/blueleafbooks/storefront/internal/domain"
)

type orderItemDTO struct {
	Book  *bookDTO `json:"book"`
	Price float64  `json:"price"`
}

type orderDTO struct {
	ID            string         `json:"_id"`
	Items         []orderItemDTO `json:"items"`
	TotalAmount   float64        `json:"totalAmount"`
	DiscountCode  string         `json:"discountCode"`
	PaymentStatus string         `json:"paymentStatus"`
	PaymentMethod string         `json:"paymentMethod"`
	CustomerName  string         `json:"customerName"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (d orderDTO) toDomain() domain.Order {
	order := domain.Order{
		ID:            d.ID,
		TotalCents:    dollarsToCents(d.TotalAmount),
		DiscountCode:  d.DiscountCode,
		PaymentStatus: d.PaymentStatus,
		PaymentMethod: d.PaymentMethod,
		CustomerName:  d.CustomerName,
		CreatedAt:     d.CreatedAt,
	}
	for _, item := range d.Items {
		oi := domain.OrderItem{PriceCents: dollarsToCents(item.Price)}
		if item.Book != nil {
			book := item.Book.toDomain()
			oi.Book = &book
		}
		order.Items = append(order.Items, oi)
	}
	return order
}

func ordersToDomain(dtos []orderDTO) []domain.Order {
	orders := make([]domain.Order, 0, len(dtos))
	for _, d := range dtos {
		orders = append(orders, d.toDomain())
	}
	return orders
}

// CreateOrderInput is the checkout submission. Amounts travel as float
// dollars because that is what the backend stores.
type CreateOrderInput struct {
	BookIDs       []string
	TotalCents    int64
	DiscountCode  string
	DiscountCents int64
	PaymentMethod string
	PaymentRef    string
}

// CreateOrder submits a paid cart as an order.
func (c *Client) CreateOrder(ctx context.Context, token string, in CreateOrderInput) (*domain.Order, error) {
	body := map[string]any{
		"bookIds":        in.BookIDs,
		"totalAmount":    centsToDollars(in.TotalCents),
		"paymentMethod":  in.PaymentMethod,
		"paymentRef":     in.PaymentRef,
		"discountCode":   in.DiscountCode,
		"discountAmount": centsToDollars(in.DiscountCents),
	}

	var dto orderDTO
	if err := c.do(ctx, http.MethodPost, "/orders", token, body, &dto); err != nil {
		return nil, err
	}
	order := dto.toDomain()
	return &order, nil
}

// MyOrders returns the authenticated customer's order history, newest first.
func (c *Client) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var dtos []orderDTO
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", token, nil, &dtos); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos), nil
}

// GetOrder fetches one order the caller owns.
func (c *Client) GetOrder(ctx context.Context, token, id string) (*domain.Order, error) {
	var dto orderDTO
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), token, nil, &dto); err != nil {
		return nil, err
	}
	order := dto.toDomain()
	return &order, nil
}
