package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddDeduplicates(t *testing.T) {
	cart := Cart{"b1"}

	cart, added := cart.Add("b2")
	assert.True(t, added)
	assert.Equal(t, Cart{"b1", "b2"}, cart)

	same, added := cart.Add("b1")
	assert.False(t, added)
	assert.Equal(t, Cart{"b1", "b2"}, same)
}

func TestCart_RemovePreservesOrder(t *testing.T) {
	cart := Cart{"b1", "b2", "b3"}
	assert.Equal(t, Cart{"b1", "b3"}, cart.Remove("b2"))
	assert.Equal(t, Cart{"b1", "b2", "b3"}, cart.Remove("missing"))
}

func TestCart_Missing(t *testing.T) {
	cart := Cart{"b1", "b2", "b3"}

	assert.Equal(t, []string{"b2"}, cart.Missing([]string{"b1", "b3"}))
	assert.Nil(t, cart.Missing([]string{"b1", "b2", "b3"}))
	assert.Equal(t, []string{"b1", "b2", "b3"}, cart.Missing(nil))
}

func TestSubtotal(t *testing.T) {
	books := []Book{
		{ID: "b1", PriceCents: 999},
		{ID: "b2", PriceCents: 2500},
	}
	assert.Equal(t, int64(3499), Subtotal(books))
	assert.Zero(t, Subtotal(nil))
}
