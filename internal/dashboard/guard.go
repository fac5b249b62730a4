package dashboard

import (
	"time"

	"github.com/blueleafbooks/storefront/internal/session"
)

// Decision is the outcome of a dashboard access check.
type Decision struct {
	Allow bool

	// RedirectTo is set when access is denied: the login page for missing or
	// expired credentials, the visitor's own dashboard for a role mismatch.
	RedirectTo string
}

// Guard decides whether a session may open a role-gated dashboard. The check
// is purely local: a missing token, an expired token, or a wrong role is
// turned away before any backend call happens. The backend still authorizes
// every fetch the dashboard makes; the guard only avoids loading a page that
// is guaranteed to fail.
func Guard(sess *session.Session, requiredRole string, now time.Time) Decision {
	if !sess.Authenticated() || !session.TokenUsable(sess.Token, now) {
		return Decision{RedirectTo: "/login"}
	}

	if !sess.HasRole(requiredRole) {
		target := sess.User.DashboardPath()
		if target == "" {
			target = "/"
		}
		return Decision{RedirectTo: target}
	}

	return Decision{Allow: true}
}
