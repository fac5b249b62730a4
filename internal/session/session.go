package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/blueleafbooks/storefront/internal/domain"
)

// Session is the per-visitor state the storefront keeps between requests:
// the backend auth token, the cached user record, the cart, and any applied
// coupon. It replaces ambient browser storage with an explicit object that is
// loaded once per request and saved back after mutations.
type Session struct {
	ID        string           `json:"id"`
	Token     string           `json:"token"`
	User      *domain.User     `json:"user,omitempty"`
	Cart      domain.Cart      `json:"cart"`
	Coupon    *domain.Discount `json:"coupon,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// New creates an empty session with a fresh ID.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New().String(),
		Cart:      domain.Cart{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Authenticated reports whether the session carries an auth token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// HasRole reports whether the cached user exists and has the given role.
func (s *Session) HasRole(role string) bool {
	return s != nil && s.User != nil && s.User.Role == role
}

// ClearAuth drops the token and cached user, e.g. on logout.
func (s *Session) ClearAuth() {
	s.Token = ""
	s.User = nil
}

// Store persists sessions.
type Store interface {
	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Save persists a session, overwriting any existing one with the same ID.
	Save(ctx context.Context, s *Session) error

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error
}
