package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_NoDiscount(t *testing.T) {
	books := []Book{
		{ID: "b1", PriceCents: 1000},
		{ID: "b2", PriceCents: 1550},
	}

	totals := ComputeTotals(books, nil)

	assert.Equal(t, int64(2550), totals.SubtotalCents)
	assert.Zero(t, totals.DiscountCents)
	assert.Equal(t, int64(2550), totals.TotalCents)
}

func TestComputeTotals_WithDiscount(t *testing.T) {
	books := []Book{{ID: "b1", PriceCents: 1000}}
	d := &Discount{
		Code:        "SAVE10",
		Percentage:  10,
		AmountCents: 100,
		Items: []ItemDiscount{
			{BookID: "b1", PriceCents: 900, AmountCents: 100},
		},
	}

	totals := ComputeTotals(books, d)

	assert.Equal(t, int64(1000), totals.SubtotalCents)
	assert.Equal(t, int64(100), totals.DiscountCents)
	assert.Equal(t, int64(900), totals.TotalCents)

	// The aggregate discount matches the itemized sum for in-cart books.
	assert.Equal(t, totals.DiscountCents, d.ItemizedTotal(books))
}

func TestItemizedTotal_IgnoresUnknownBooks(t *testing.T) {
	books := []Book{{ID: "b1", PriceCents: 1000}}
	d := &Discount{
		AmountCents: 100,
		Items: []ItemDiscount{
			{BookID: "b1", AmountCents: 100},
			{BookID: "ghost", AmountCents: 400},
		},
	}

	assert.Equal(t, int64(100), d.ItemizedTotal(books))
}

func TestItemFor(t *testing.T) {
	d := &Discount{Items: []ItemDiscount{{BookID: "b1", PriceCents: 900}}}

	it, ok := d.ItemFor("b1")
	assert.True(t, ok)
	assert.Equal(t, int64(900), it.PriceCents)

	_, ok = d.ItemFor("b2")
	assert.False(t, ok)

	var nilDiscount *Discount
	_, ok = nilDiscount.ItemFor("b1")
	assert.False(t, ok)
}
