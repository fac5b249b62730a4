package domain

// Cart is the ordered, deduplicated list of book identifiers a visitor has
// selected pre-purchase. It is persisted in the session store and rewritten
// on every mutation.
type Cart []string

// Contains reports whether the cart already holds the given book.
func (c Cart) Contains(bookID string) bool {
	for _, id := range c {
		if id == bookID {
			return true
		}
	}
	return false
}

// Add appends a book ID and reports whether the cart changed. Adding an ID
// that is already present is a no-op.
func (c Cart) Add(bookID string) (Cart, bool) {
	if c.Contains(bookID) {
		return c, false
	}
	return append(c, bookID), true
}

// Remove deletes a book ID, preserving the order of the remainder.
func (c Cart) Remove(bookID string) Cart {
	out := make(Cart, 0, len(c))
	for _, id := range c {
		if id != bookID {
			out = append(out, id)
		}
	}
	return out
}

// Missing returns the IDs in the cart that are absent from the given set,
// preserving cart order. Used to report items the backend no longer confirms.
func (c Cart) Missing(confirmed []string) []string {
	set := make(map[string]struct{}, len(confirmed))
	for _, id := range confirmed {
		set[id] = struct{}{}
	}

	var missing []string
	for _, id := range c {
		if _, ok := set[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
