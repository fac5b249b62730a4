package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/blueleafbooks/storefront/internal/session"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
	"github.com/blueleafbooks/storefront/pkg/logger"
)

const sessionCookie = "sid"

type sessionCtxKey struct{}

// SessionMiddleware loads the visitor's session from the sid cookie, creating
// a fresh one when the cookie is absent or the stored session has expired.
// The session is attached to the request context; handlers mutate it and
// persist through the store.
type SessionMiddleware struct {
	store  session.Store
	secure bool
	logger *slog.Logger
}

// NewSessionMiddleware creates the session loader. secure controls the
// cookie's Secure flag and should only be off in local development.
func NewSessionMiddleware(store session.Store, secure bool, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{store: store, secure: secure, logger: logger}
}

// Handler is the middleware entry point.
func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.load(r)
		if sess == nil {
			sess = session.New()
			if err := m.store.Save(r.Context(), sess); err != nil {
				m.logger.ErrorContext(r.Context(), "failed to create session",
					slog.String("error", err.Error()),
				)
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			}
			m.setCookie(w, sess.ID)
		}

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, sess)
		if sess.User != nil {
			ctx = logger.WithUserID(ctx, sess.User.ID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) load(r *http.Request) *session.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			m.logger.WarnContext(r.Context(), "session load failed",
				slog.String("error", err.Error()),
			)
		}
		return nil
	}
	return sess
}

func (m *SessionMiddleware) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionFrom returns the request session. The session middleware guarantees
// one exists on every routed request.
func SessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*session.Session)
	return sess
}
