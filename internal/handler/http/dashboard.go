package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blueleafbooks/storefront/internal/dashboard"
	"github.com/blueleafbooks/storefront/internal/domain"
)

// guard runs the local access check for a role-gated page. It reports
// whether the request may proceed, issuing the redirect itself otherwise.
func (h *Handler) guard(w http.ResponseWriter, r *http.Request, role string) bool {
	sess := SessionFrom(r.Context())

	// A session can hold a token without a cached profile, for example after
	// a partial write or a schema change. Refill it before deciding.
	if sess.Authenticated() && sess.User == nil {
		if user, err := h.backend.Me(r.Context(), sess.Token); err == nil {
			sess.User = user
			_ = h.store.Save(r.Context(), sess)
		}
	}

	d := dashboard.Guard(sess, role, time.Now())
	if d.Allow {
		return true
	}

	if d.RedirectTo == "/login" {
		// Expired credentials are dropped so the login page starts clean.
		sess.ClearAuth()
		_ = h.store.Save(r.Context(), sess)
		d.RedirectTo = "/login?next=" + r.URL.Path
	}
	http.Redirect(w, r, d.RedirectTo, http.StatusSeeOther)
	return false
}

// DashboardCustomer renders the customer's library and order history.
func (h *Handler) DashboardCustomer(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleCustomer) {
		return
	}
	sess := SessionFrom(r.Context())

	viewData, err := dashboard.LoadCustomer(r.Context(), h.backend, sess.Token)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	pd := h.page(sess, "My library")
	pd.Data = viewData
	h.render.Render(w, http.StatusOK, "dashboard_customer", pd)
}

// DashboardAuthor renders the author overview.
func (h *Handler) DashboardAuthor(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAuthor) {
		return
	}
	sess := SessionFrom(r.Context())

	viewData, err := dashboard.LoadAuthor(r.Context(), h.backend, sess.Token)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	pd := h.page(sess, "Author dashboard")
	pd.Data = viewData
	h.render.Render(w, http.StatusOK, "dashboard_author", pd)
}

// DashboardAdmin renders the admin overview. All four backing fetches run
// concurrently and all must succeed.
func (h *Handler) DashboardAdmin(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	dash, err := dashboard.LoadAdmin(r.Context(), h.backend, sess.Token)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	// Payouts and coupons are management panels below the overview; they
	// degrade to empty sections independently.
	payouts, err := h.backend.AdminPayouts(r.Context(), sess.Token)
	if err != nil {
		payouts = nil
	}
	coupons, err := h.backend.AdminCoupons(r.Context(), sess.Token)
	if err != nil {
		coupons = nil
	}

	pd := h.page(sess, "Admin dashboard")
	pd.Data = map[string]any{
		"Dashboard": dash,
		"Earnings":  dash.Earnings,
		"Pending":   dash.PendingBooks(),
		"Payouts":   payouts,
		"Coupons":   coupons,
	}
	h.render.Render(w, http.StatusOK, "dashboard_admin", pd)
}

// AdminBookStatus approves or rejects a pending book.
func (h *Handler) AdminBookStatus(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	status := r.PostFormValue("status")
	if status != domain.BookStatusApproved && status != domain.BookStatusRejected {
		http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
		return
	}

	if err := h.backend.UpdateBookStatus(r.Context(), sess.Token, chi.URLParam(r, "id"), status); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}

// AdminBookDelete removes a book from the catalog.
func (h *Handler) AdminBookDelete(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	if err := h.backend.AdminDeleteBook(r.Context(), sess.Token, chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}

// AdminPayoutPaid marks an author payout as sent.
func (h *Handler) AdminPayoutPaid(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	if err := h.backend.MarkPayoutPaid(r.Context(), sess.Token, chi.URLParam(r, "authorID")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}

// AdminCouponCreate registers a new coupon code.
func (h *Handler) AdminCouponCreate(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	percentage, err := strconv.ParseFloat(r.PostFormValue("percentage"), 64)
	if err != nil || percentage <= 0 || percentage > 100 {
		http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
		return
	}

	if _, err := h.backend.CreateCoupon(r.Context(), sess.Token, r.PostFormValue("code"), percentage); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}

// AdminCouponToggle flips a coupon between active and inactive.
func (h *Handler) AdminCouponToggle(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	if err := h.backend.ToggleCoupon(r.Context(), sess.Token, chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}

// AdminCouponDelete removes a coupon definition.
func (h *Handler) AdminCouponDelete(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, domain.RoleAdmin) {
		return
	}
	sess := SessionFrom(r.Context())

	if err := h.backend.DeleteCoupon(r.Context(), sess.Token, chi.URLParam(r, "id")); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard/admin", http.StatusSeeOther)
}
