package http

import (
	"net/http"

	"github.com/blueleafbooks/storefront/internal/api"
	"github.com/blueleafbooks/storefront/internal/domain"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
	"github.com/blueleafbooks/storefront/pkg/validator"
)

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	if sess.Authenticated() {
		http.Redirect(w, r, dashboardOrHome(sess.User), http.StatusSeeOther)
		return
	}

	pd := h.page(sess, "Log in")
	pd.Data = map[string]string{"Next": r.URL.Query().Get("next")}
	h.render.Render(w, http.StatusOK, "login", pd)
}

// Login handles the login form submission. On success the session carries
// the backend token and cached user; the cart survives across the login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	in := api.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := validator.Validate(in); err != nil {
		h.renderLoginError(w, r, in.Email, "Please enter a valid email and password.")
		return
	}

	token, user, err := h.backend.Login(r.Context(), in)
	if err != nil {
		h.renderLoginError(w, r, in.Email, apperrors.Message(err, "Login failed. Please try again."))
		return
	}

	sess.Token = token
	sess.User = user
	if !h.saveSession(w, r, sess) {
		return
	}

	next := r.PostFormValue("next")
	if next == "" || next[0] != '/' {
		next = dashboardOrHome(user)
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, email, msg string) {
	sess := SessionFrom(r.Context())
	pd := h.page(sess, "Log in")
	pd.Error = msg
	pd.Data = map[string]string{"Email": email, "Next": r.PostFormValue("next")}
	h.render.Render(w, http.StatusUnprocessableEntity, "login", pd)
}

// RegisterPage renders the signup form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	if sess.Authenticated() {
		http.Redirect(w, r, dashboardOrHome(sess.User), http.StatusSeeOther)
		return
	}

	pd := h.page(sess, "Sign up")
	pd.Data = map[string]string{}
	h.render.Render(w, http.StatusOK, "register", pd)
}

// Register handles the signup form submission.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())

	in := api.RegisterInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
	if err := validator.Validate(in); err != nil {
		pd := h.page(sess, "Sign up")
		pd.Error = "Please check the form: name, a valid email, and a password of at least 8 characters are required."
		pd.Data = map[string]string{"Name": in.Name, "Email": in.Email, "Role": in.Role}
		h.render.Render(w, http.StatusUnprocessableEntity, "register", pd)
		return
	}

	token, user, err := h.backend.Register(r.Context(), in)
	if err != nil {
		pd := h.page(sess, "Sign up")
		pd.Error = apperrors.Message(err, "Registration failed. Please try again.")
		pd.Data = map[string]string{"Name": in.Name, "Email": in.Email, "Role": in.Role}
		h.render.Render(w, http.StatusUnprocessableEntity, "register", pd)
		return
	}

	sess.Token = token
	sess.User = user
	if !h.saveSession(w, r, sess) {
		return
	}
	http.Redirect(w, r, dashboardOrHome(user), http.StatusSeeOther)
}

// dashboardOrHome resolves a user's dashboard, falling back to the home page
// when the session carries a token but no usable cached profile. An empty
// redirect target on /login would otherwise loop the page onto itself.
func dashboardOrHome(u *domain.User) string {
	if p := u.DashboardPath(); p != "" {
		return p
	}
	return "/"
}

// Logout drops the session's credentials. The cart is kept so an anonymous
// visitor does not lose their picks by logging out.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := SessionFrom(r.Context())
	sess.ClearAuth()
	sess.Coupon = nil
	if !h.saveSession(w, r, sess) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
