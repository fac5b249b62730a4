package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blueleafbooks/storefront/internal/domain"
	"github.com/blueleafbooks/storefront/internal/view"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

// CartPage reconciles the cart against the catalog and renders it. Stale
// items are dropped and announced with one notice; a backend failure shows
// the error banner but leaves the stored cart untouched.
func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	result, err := h.cart.Reconcile(r.Context(), sess)

	pd := h.page(sess, "Your cart")
	if err != nil {
		pd.Error = apperrors.Message(err, "We could not refresh your cart. Please try again.")
		pd.Data = view.CartPage{}
		h.render.Render(w, http.StatusOK, "cart", pd)
		return
	}

	pd.CartCount = len(sess.Cart)
	pd.Notice = result.Notice
	if pd.Notice == "" {
		switch {
		case r.URL.Query().Get("dup") != "":
			pd.Notice = "That book is already in your cart."
		case r.URL.Query().Get("coupon") == "empty":
			pd.Notice = "Please enter a coupon code."
		}
	}

	if c := sess.Coupon; c != nil && len(c.Items) > 0 && c.ItemizedTotal(result.Books) != c.AmountCents {
		h.logger.WarnContext(r.Context(), "discount itemization disagrees with aggregate",
			"code", c.Code,
			"aggregate_cents", c.AmountCents,
			"itemized_cents", c.ItemizedTotal(result.Books),
		)
	}
	pd.Data = view.CartPage{
		Rows:   view.CartRows(result.Books, sess.Coupon),
		Coupon: sess.Coupon,
		Totals: domain.ComputeTotals(result.Books, sess.Coupon),
	}
	h.render.Render(w, http.StatusOK, "cart", pd)
}

// CartAdd puts a book in the cart and returns to the page the visitor came
// from. A buy_now submit skips straight to checkout instead.
func (h *Handler) CartAdd(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	bookID := r.PostFormValue("book_id")
	if bookID == "" {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}

	added, err := h.cart.Add(r.Context(), sess, bookID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if r.PostFormValue("buy_now") != "" {
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}
	if !added {
		// Lands on the cart with an advisory instead of pretending the
		// duplicate went in.
		http.Redirect(w, r, "/cart?dup=1", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, backTo(r, "/cart"), http.StatusSeeOther)
}

// CartRemove takes a book out of the cart.
func (h *Handler) CartRemove(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if err := h.cart.Remove(r.Context(), sess, r.PostFormValue("book_id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartCoupon applies a coupon code to the cart. A blank code is an advisory,
// not a failure: the discount resets and the cart re-renders with a notice.
// Validation failures re-render the cart with the failure message; an
// unauthenticated visitor is sent to log in instead.
func (h *Handler) CartCoupon(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	code := r.PostFormValue("code")
	if strings.TrimSpace(code) == "" {
		if err := h.cart.RemoveCoupon(r.Context(), sess); err != nil {
			h.renderError(w, r, err)
			return
		}
		http.Redirect(w, r, "/cart?coupon=empty", http.StatusSeeOther)
		return
	}

	_, err := h.cart.ApplyCoupon(r.Context(), sess, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			http.Redirect(w, r, "/login?next=/cart", http.StatusSeeOther)
			return
		}
		h.renderCartWithError(w, r, apperrors.Message(err, "We could not apply that coupon."))
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CartCouponRemove drops the applied coupon.
func (h *Handler) CartCouponRemove(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if err := h.cart.RemoveCoupon(r.Context(), sess); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// renderCartWithError re-renders the cart page with an alert, keeping the
// confirmed items visible behind the message.
func (h *Handler) renderCartWithError(w http.ResponseWriter, r *http.Request, msg string) {
	sess := SessionFrom(r.Context())

	pd := h.page(sess, "Your cart")
	pd.Error = msg

	result, err := h.cart.Reconcile(r.Context(), sess)
	if err != nil {
		pd.Data = view.CartPage{}
	} else {
		pd.CartCount = len(sess.Cart)
		pd.Data = view.CartPage{
			Rows:   view.CartRows(result.Books, sess.Coupon),
			Coupon: sess.Coupon,
			Totals: domain.ComputeTotals(result.Books, sess.Coupon),
		}
	}
	h.render.Render(w, http.StatusUnprocessableEntity, "cart", pd)
}

// backTo returns the referer when it is a local path, else the fallback.
func backTo(r *http.Request, fallback string) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return fallback
	}
	if u, err := r.URL.Parse(ref); err == nil && u.Host == r.Host && u.Path != "" {
		return u.Path
	}
	return fallback
}
