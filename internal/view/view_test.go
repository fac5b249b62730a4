package view

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueleafbooks/storefront/internal/domain"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	require.NoError(t, err)
	return r
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.99", Money(1299))
	assert.Equal(t, "$0.05", Money(5))
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "-$3.50", Money(-350))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", Stars(4.2))
	assert.Equal(t, "★★★★★", Stars(4.8))
	assert.Equal(t, "☆☆☆☆☆", Stars(0))
}

func TestNewRenderer_ParsesAllPages(t *testing.T) {
	r := newTestRenderer(t)
	for _, name := range pageNames {
		assert.Contains(t, r.pages, name)
	}
}

func TestRender_CartPageShowsStrikethroughPricing(t *testing.T) {
	r := newTestRenderer(t)

	coupon := &domain.Discount{
		Code:        "SAVE10",
		AmountCents: 130,
		Items: []domain.ItemDiscount{
			{BookID: "b1", PriceCents: 1169, AmountCents: 130},
		},
	}
	books := []domain.Book{
		{ID: "b1", Title: "Discounted", PriceCents: 1299},
		{ID: "b2", Title: "Full Price", PriceCents: 500},
	}

	rec := httptest.NewRecorder()
	r.Render(rec, 200, "cart", PageData{
		CartCount: 2,
		Data: CartPage{
			Rows:   CartRows(books, coupon),
			Coupon: coupon,
			Totals: domain.ComputeTotals(books, coupon),
		},
	})

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<s>$12.99</s>")
	assert.Contains(t, body, "$11.69")
	assert.Contains(t, body, "SAVE10")
	assert.Contains(t, body, "$16.69") // 17.99 subtotal - 1.30 discount
}

func TestRender_EscapesUserContent(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	r.Render(rec, 200, "error", PageData{
		Data: map[string]string{
			"Heading": "Not found",
			"Detail":  `<script>alert("x")</script>`,
		},
	})

	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRender_UnknownPageIs500(t *testing.T) {
	r := newTestRenderer(t)

	rec := httptest.NewRecorder()
	r.Render(rec, 200, "no-such-page", PageData{})
	assert.Equal(t, 500, rec.Code)
}

func TestCartRows_PairsDiscounts(t *testing.T) {
	coupon := &domain.Discount{
		Items: []domain.ItemDiscount{{BookID: "b1", PriceCents: 900}},
	}
	rows := CartRows([]domain.Book{{ID: "b1"}, {ID: "b2"}}, coupon)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Discounted)
	assert.Equal(t, int64(900), rows[0].DiscountedCents)
	assert.False(t, rows[1].Discounted)
}

func TestCartRows_NilCoupon(t *testing.T) {
	rows := CartRows([]domain.Book{{ID: "b1"}}, nil)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Discounted)
}
