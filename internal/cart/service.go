package cart

import (
	"context"
	"log/slog"
	"strings"

	"github.com/blueleafbooks/storefront/internal/domain"
	"github.com/blueleafbooks/storefront/internal/event"
	"github.com/blueleafbooks/storefront/internal/session"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

// Catalog confirms which cart items the backend still sells.
type Catalog interface {
	ValidateCart(ctx context.Context, ids []string) ([]domain.Book, error)
}

// CouponValidator validates a coupon code against the cart contents.
type CouponValidator interface {
	ApplyCoupon(ctx context.Context, token, code string, bookIDs []string) (*domain.Discount, error)
}

// RemovedItemsNotice is shown once per reconciliation regardless of how many
// items were dropped.
const RemovedItemsNotice = "Some items in your cart are no longer available and were removed."

// Service owns cart state transitions. Every mutation persists the session
// and discards any applied coupon, since the coupon was validated against the
// previous cart contents.
type Service struct {
	catalog Catalog
	coupons CouponValidator
	store   session.Store
	events  *event.Publisher
	logger  *slog.Logger
}

// NewService creates a cart service.
func NewService(catalog Catalog, coupons CouponValidator, store session.Store, events *event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		coupons: coupons,
		store:   store,
		events:  events,
		logger:  logger,
	}
}

// ReconcileResult is the outcome of syncing the cart against the catalog.
type ReconcileResult struct {
	// Books are the confirmed cart items with current catalog data.
	Books []domain.Book

	// Removed is how many stale IDs were dropped from the cart.
	Removed int

	// Notice is a single user-facing message when items were removed.
	Notice string
}

// Subtotal is the sum of the confirmed items, in cents.
func (r *ReconcileResult) Subtotal() int64 {
	return domain.Subtotal(r.Books)
}

// Reconcile syncs the session cart against the backend catalog. An empty
// cart never touches the network. When the backend confirms fewer items than
// the cart holds, the cart is rewritten to the confirmed set and persisted;
// the caller gets one notice, not one per removed item. A failed or
// malformed catalog response leaves the cart exactly as it was.
func (s *Service) Reconcile(ctx context.Context, sess *session.Session) (*ReconcileResult, error) {
	if len(sess.Cart) == 0 {
		return &ReconcileResult{}, nil
	}

	books, err := s.catalog.ValidateCart(ctx, []string(sess.Cart))
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{Books: books}

	missing := sess.Cart.Missing(domain.BookIDs(books))
	if len(missing) == 0 {
		return result, nil
	}

	result.Removed = len(missing)
	result.Notice = RemovedItemsNotice

	sess.Cart = domain.Cart(domain.BookIDs(books))
	sess.Coupon = nil
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart reconciled",
		slog.Int("removed", result.Removed),
		slog.Int("remaining", len(sess.Cart)),
	)
	s.events.CartUpdated(ctx, sess.ID, []string(sess.Cart))

	return result, nil
}

// Add puts a book in the cart. Adding a book that is already present is a
// no-op and reports false.
func (s *Service) Add(ctx context.Context, sess *session.Session, bookID string) (bool, error) {
	cart, added := sess.Cart.Add(bookID)
	if !added {
		return false, nil
	}

	sess.Cart = cart
	sess.Coupon = nil
	if err := s.store.Save(ctx, sess); err != nil {
		return false, err
	}

	s.events.CartUpdated(ctx, sess.ID, []string(sess.Cart))
	return true, nil
}

// Remove takes a book out of the cart. Removing an absent book is a no-op.
func (s *Service) Remove(ctx context.Context, sess *session.Session, bookID string) error {
	if !sess.Cart.Contains(bookID) {
		return nil
	}

	sess.Cart = sess.Cart.Remove(bookID)
	sess.Coupon = nil
	if err := s.store.Save(ctx, sess); err != nil {
		return err
	}

	s.events.CartUpdated(ctx, sess.ID, []string(sess.Cart))
	return nil
}

// Clear empties the cart, e.g. after a completed checkout.
func (s *Service) Clear(ctx context.Context, sess *session.Session) error {
	if len(sess.Cart) == 0 && sess.Coupon == nil {
		return nil
	}

	sess.Cart = domain.Cart{}
	sess.Coupon = nil
	if err := s.store.Save(ctx, sess); err != nil {
		return err
	}

	s.events.CartCleared(ctx, sess.ID)
	return nil
}

// ApplyCoupon validates a code against the current cart and stores the
// resulting discount in the session. The order of checks matters: a blank
// code and an empty cart are rejected locally, and an unauthenticated
// session is turned away before any network call is made. Every failure
// path discards any previously applied discount, so the totals fall back
// to undiscounted rather than showing a discount that no longer holds.
func (s *Service) ApplyCoupon(ctx context.Context, sess *session.Session, code string) (*domain.Discount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		if err := s.RemoveCoupon(ctx, sess); err != nil {
			return nil, err
		}
		return nil, apperrors.InvalidInput("Please enter a coupon code")
	}
	if len(sess.Cart) == 0 {
		return nil, apperrors.InvalidInput("Your cart is empty")
	}
	if !sess.Authenticated() {
		return nil, apperrors.Unauthorized("Please log in to apply a coupon")
	}

	discount, err := s.coupons.ApplyCoupon(ctx, sess.Token, code, []string(sess.Cart))
	if err != nil {
		if dropErr := s.RemoveCoupon(ctx, sess); dropErr != nil {
			s.logger.WarnContext(ctx, "failed to drop stale coupon",
				slog.String("error", dropErr.Error()),
			)
		}
		return nil, err
	}

	sess.Coupon = discount
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "coupon applied",
		slog.String("code", discount.Code),
		slog.Int64("discount_cents", discount.AmountCents),
	)
	s.events.CouponApplied(ctx, sess.ID, discount.Code, discount.AmountCents)

	return discount, nil
}

// RemoveCoupon drops an applied coupon without touching the cart.
func (s *Service) RemoveCoupon(ctx context.Context, sess *session.Session) error {
	if sess.Coupon == nil {
		return nil
	}
	sess.Coupon = nil
	return s.store.Save(ctx, sess)
}
