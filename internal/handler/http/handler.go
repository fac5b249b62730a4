package http

import (
	"log/slog"
	"net/http"

	"github.com/blueleafbooks/storefront/internal/api"
	"github.com/blueleafbooks/storefront/internal/cart"
	"github.com/blueleafbooks/storefront/internal/event"
	"github.com/blueleafbooks/storefront/internal/session"
	"github.com/blueleafbooks/storefront/internal/view"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

// Handler serves the storefront pages. Each page loads the session, talks to
// the backend through the API client, and renders server-side.
type Handler struct {
	backend *api.Client
	cart    *cart.Service
	store   session.Store
	render  *view.Renderer
	events  *event.Publisher
	logger  *slog.Logger
}

// NewHandler wires the page handlers.
func NewHandler(backend *api.Client, cartSvc *cart.Service, store session.Store, render *view.Renderer, events *event.Publisher, logger *slog.Logger) *Handler {
	return &Handler{
		backend: backend,
		cart:    cartSvc,
		store:   store,
		render:  render,
		events:  events,
		logger:  logger,
	}
}

// page builds the common template envelope from the session.
func (h *Handler) page(sess *session.Session, title string) view.PageData {
	pd := view.PageData{Title: title, CartCount: len(sess.Cart)}
	if sess.User != nil {
		pd.User = sess.User
	}
	return pd
}

// renderError shows the error page with a message safe for the visitor.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	sess := SessionFrom(r.Context())

	status := apperrors.HTTPStatus(err)
	heading := "Something went wrong"
	if status == http.StatusNotFound {
		heading = "Not found"
	}

	h.logger.ErrorContext(r.Context(), "page failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("error", err.Error()),
	)

	pd := h.page(sess, heading)
	pd.Data = map[string]string{
		"Heading": heading,
		"Detail":  apperrors.Message(err, "Please try again in a moment."),
	}
	h.render.Render(w, status, "error", pd)
}

// saveSession persists session mutations made by a handler.
func (h *Handler) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) bool {
	if err := h.store.Save(r.Context(), sess); err != nil {
		h.renderError(w, r, err)
		return false
	}
	return true
}
