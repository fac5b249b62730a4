package http

import (
	"net/http"
	"time"

	"github.com/blueleafbooks/storefront/internal/api"
	"github.com/blueleafbooks/storefront/internal/domain"
	"github.com/blueleafbooks/storefront/internal/session"
	"github.com/blueleafbooks/storefront/internal/view"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

// CheckoutPage renders the order review. The visitor must be logged in with
// a usable token; the cart is reconciled one more time so the reviewed
// amounts reflect the live catalog.
func (h *Handler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if !sess.Authenticated() || !session.TokenUsable(sess.Token, time.Now()) {
		http.Redirect(w, r, "/login?next=/checkout", http.StatusSeeOther)
		return
	}
	if len(sess.Cart) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	result, err := h.cart.Reconcile(r.Context(), sess)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if len(result.Books) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	pd := h.page(sess, "Checkout")
	pd.CartCount = len(sess.Cart)
	pd.Notice = result.Notice
	pd.Data = view.CheckoutPage{
		Rows:        view.CartRows(result.Books, sess.Coupon),
		Coupon:      sess.Coupon,
		Totals:      domain.ComputeTotals(result.Books, sess.Coupon),
		PayPalStart: "/checkout/paypal",
	}
	h.render.Render(w, http.StatusOK, "checkout", pd)
}

// CheckoutPayPal opens a PayPal payment for the cart and redirects the buyer
// to the approval page. The discount code travels by name only; the backend
// revalidates it and computes the charged amount itself.
func (h *Handler) CheckoutPayPal(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	if !sess.Authenticated() {
		http.Redirect(w, r, "/login?next=/checkout", http.StatusSeeOther)
		return
	}
	if len(sess.Cart) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	result, err := h.cart.Reconcile(r.Context(), sess)
	if err != nil {
		h.renderCartWithError(w, r, apperrors.Message(err, "We could not start the payment. Please try again."))
		return
	}
	if len(result.Books) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	code := ""
	if sess.Coupon != nil {
		code = sess.Coupon.Code
	}

	// A coupon can bring the charge to zero; PayPal rejects zero-amount
	// orders, so the purchase is recorded directly instead.
	if totals := domain.ComputeTotals(result.Books, sess.Coupon); totals.TotalCents == 0 {
		h.completeFreeOrder(w, r, sess, totals, code)
		return
	}

	order, err := h.backend.CreatePayPalOrder(r.Context(), sess.Token, []string(sess.Cart), code)
	if err != nil {
		h.renderCartWithError(w, r, apperrors.Message(err, "We could not start the payment. Please try again."))
		return
	}

	http.Redirect(w, r, order.ApproveURL, http.StatusSeeOther)
}

// completeFreeOrder records a fully-discounted purchase without a payment
// round trip, then clears the cart like a captured payment would.
func (h *Handler) completeFreeOrder(w http.ResponseWriter, r *http.Request, sess *session.Session, totals domain.Totals, code string) {
	order, err := h.backend.CreateOrder(r.Context(), sess.Token, api.CreateOrderInput{
		BookIDs:       []string(sess.Cart),
		TotalCents:    totals.TotalCents,
		DiscountCode:  code,
		DiscountCents: totals.DiscountCents,
		PaymentMethod: "free",
	})
	if err != nil {
		h.renderCartWithError(w, r, apperrors.Message(err, "We could not complete the order. Please try again."))
		return
	}

	items := len(sess.Cart)
	if err := h.cart.Clear(r.Context(), sess); err != nil {
		h.logger.ErrorContext(r.Context(), "cart clear after checkout failed",
			"order_id", order.ID,
			"error", err.Error(),
		)
	}
	h.events.CheckoutCompleted(r.Context(), order.ID, 0, items)

	http.Redirect(w, r, "/dashboard/customer", http.StatusSeeOther)
}

// CheckoutPayPalReturn captures an approved PayPal payment, clears the cart,
// and lands the buyer on their library.
func (h *Handler) CheckoutPayPalReturn(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	paypalOrderID := r.URL.Query().Get("token")
	if paypalOrderID == "" || !sess.Authenticated() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	orderID, err := h.backend.CapturePayPalOrder(r.Context(), sess.Token, paypalOrderID)
	if err != nil {
		h.renderCartWithError(w, r, apperrors.Message(err, "The payment could not be completed."))
		return
	}

	items := len(sess.Cart)
	var totalCents int64
	if order, err := h.backend.GetOrder(r.Context(), sess.Token, orderID); err == nil {
		totalCents = order.TotalCents
	}

	if err := h.cart.Clear(r.Context(), sess); err != nil {
		h.logger.ErrorContext(r.Context(), "cart clear after checkout failed",
			"order_id", orderID,
			"error", err.Error(),
		)
	}
	h.events.CheckoutCompleted(r.Context(), orderID, totalCents, items)

	http.Redirect(w, r, "/dashboard/customer", http.StatusSeeOther)
}
