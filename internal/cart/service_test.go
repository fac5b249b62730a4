package cart

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blueleafbooks/storefront/internal/domain"
	"github.com/blueleafbooks/storefront/internal/session"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ValidateCart(ctx context.Context, ids []string) ([]domain.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

type mockCoupons struct {
	mock.Mock
}

func (m *mockCoupons) ApplyCoupon(ctx context.Context, token, code string, bookIDs []string) (*domain.Discount, error) {
	args := m.Called(ctx, token, code, bookIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Discount), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService(catalog *mockCatalog, coupons *mockCoupons, store *mockStore) *Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(catalog, coupons, store, nil, logger)
}

func book(id string, cents int64) domain.Book {
	return domain.Book{ID: id, Title: "Book " + id, PriceCents: cents, Status: domain.BookStatusApproved}
}

func TestReconcile_EmptyCartSkipsNetwork(t *testing.T) {
	catalog := new(mockCatalog)
	store := new(mockStore)
	svc := newTestService(catalog, nil, store)

	sess := session.New()

	result, err := svc.Reconcile(context.Background(), sess)
	require.NoError(t, err)
	assert.Empty(t, result.Books)
	assert.Zero(t, result.Removed)
	catalog.AssertNotCalled(t, "ValidateCart")
	store.AssertNotCalled(t, "Save")
}

func TestReconcile_AllItemsConfirmed(t *testing.T) {
	catalog := new(mockCatalog)
	store := new(mockStore)
	svc := newTestService(catalog, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1", "b2"}

	catalog.On("ValidateCart", mock.Anything, []string{"b1", "b2"}).
		Return([]domain.Book{book("b1", 1000), book("b2", 1500)}, nil)

	result, err := svc.Reconcile(context.Background(), sess)
	require.NoError(t, err)
	assert.Len(t, result.Books, 2)
	assert.Zero(t, result.Removed)
	assert.Empty(t, result.Notice)
	assert.Equal(t, int64(2500), result.Subtotal())
	// No mutation happened, so nothing was persisted.
	store.AssertNotCalled(t, "Save")
}

func TestReconcile_StaleItemsRemovedWithSingleNotice(t *testing.T) {
	catalog := new(mockCatalog)
	store := new(mockStore)
	svc := newTestService(catalog, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1", "gone1", "b2", "gone2"}
	sess.Coupon = &domain.Discount{Code: "SAVE10"}

	catalog.On("ValidateCart", mock.Anything, mock.Anything).
		Return([]domain.Book{book("b1", 1000), book("b2", 1500)}, nil)
	store.On("Save", mock.Anything, sess).Return(nil)

	result, err := svc.Reconcile(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Removed)
	assert.Equal(t, RemovedItemsNotice, result.Notice)
	assert.Equal(t, domain.Cart{"b1", "b2"}, sess.Cart)
	assert.Nil(t, sess.Coupon, "coupon no longer matches the cart it was validated against")
	store.AssertExpectations(t)
}

func TestReconcile_BackendErrorLeavesCartUntouched(t *testing.T) {
	catalog := new(mockCatalog)
	store := new(mockStore)
	svc := newTestService(catalog, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1", "b2"}

	catalog.On("ValidateCart", mock.Anything, mock.Anything).
		Return(nil, apperrors.Upstream(502, "backend down"))

	_, err := svc.Reconcile(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, domain.Cart{"b1", "b2"}, sess.Cart)
	store.AssertNotCalled(t, "Save")
}

func TestReconcile_EmptyConfirmationClearsCart(t *testing.T) {
	catalog := new(mockCatalog)
	store := new(mockStore)
	svc := newTestService(catalog, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"gone1", "gone2"}

	catalog.On("ValidateCart", mock.Anything, mock.Anything).
		Return([]domain.Book{}, nil)
	store.On("Save", mock.Anything, sess).Return(nil)

	result, err := svc.Reconcile(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Removed)
	assert.Empty(t, sess.Cart)
}

func TestAdd_DuplicateIsNoOp(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(nil, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}

	added, err := svc.Add(context.Background(), sess, "b1")
	require.NoError(t, err)
	assert.False(t, added)
	store.AssertNotCalled(t, "Save")
}

func TestAdd_DropsCoupon(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(nil, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}
	sess.Coupon = &domain.Discount{Code: "SAVE10"}
	store.On("Save", mock.Anything, sess).Return(nil)

	added, err := svc.Add(context.Background(), sess, "b2")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Nil(t, sess.Coupon)
	assert.Equal(t, domain.Cart{"b1", "b2"}, sess.Cart)
}

func TestRemove_DropsCoupon(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(nil, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1", "b2"}
	sess.Coupon = &domain.Discount{Code: "SAVE10"}
	store.On("Save", mock.Anything, sess).Return(nil)

	require.NoError(t, svc.Remove(context.Background(), sess, "b1"))
	assert.Nil(t, sess.Coupon)
	assert.Equal(t, domain.Cart{"b2"}, sess.Cart)
}

func TestRemove_AbsentItemIsNoOp(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(nil, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}

	require.NoError(t, svc.Remove(context.Background(), sess, "nope"))
	store.AssertNotCalled(t, "Save")
}

func TestClear_EmptiesCartAndCoupon(t *testing.T) {
	store := new(mockStore)
	svc := newTestService(nil, nil, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}
	sess.Coupon = &domain.Discount{Code: "SAVE10"}
	store.On("Save", mock.Anything, sess).Return(nil)

	require.NoError(t, svc.Clear(context.Background(), sess))
	assert.Empty(t, sess.Cart)
	assert.Nil(t, sess.Coupon)
}

func TestApplyCoupon_BlankCode(t *testing.T) {
	coupons := new(mockCoupons)
	svc := newTestService(nil, coupons, new(mockStore))

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}
	sess.Token = "tok"

	_, err := svc.ApplyCoupon(context.Background(), sess, "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	coupons.AssertNotCalled(t, "ApplyCoupon")
}

func TestApplyCoupon_EmptyCart(t *testing.T) {
	coupons := new(mockCoupons)
	svc := newTestService(nil, coupons, new(mockStore))

	sess := session.New()
	sess.Token = "tok"

	_, err := svc.ApplyCoupon(context.Background(), sess, "SAVE10")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	coupons.AssertNotCalled(t, "ApplyCoupon")
}

func TestApplyCoupon_UnauthenticatedShortCircuits(t *testing.T) {
	coupons := new(mockCoupons)
	svc := newTestService(nil, coupons, new(mockStore))

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}

	_, err := svc.ApplyCoupon(context.Background(), sess, "SAVE10")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	coupons.AssertNotCalled(t, "ApplyCoupon")
}

func TestApplyCoupon_SuccessStoresDiscount(t *testing.T) {
	coupons := new(mockCoupons)
	store := new(mockStore)
	svc := newTestService(nil, coupons, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1", "b2"}
	sess.Token = "tok"

	discount := &domain.Discount{Code: "SAVE10", Percentage: 10, AmountCents: 250}
	coupons.On("ApplyCoupon", mock.Anything, "tok", "SAVE10", []string{"b1", "b2"}).
		Return(discount, nil)
	store.On("Save", mock.Anything, sess).Return(nil)

	got, err := svc.ApplyCoupon(context.Background(), sess, " SAVE10 ")
	require.NoError(t, err)
	assert.Equal(t, discount, got)
	assert.Equal(t, discount, sess.Coupon)
	coupons.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestApplyCoupon_RejectionLeavesSessionAlone(t *testing.T) {
	coupons := new(mockCoupons)
	store := new(mockStore)
	svc := newTestService(nil, coupons, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}
	sess.Token = "tok"

	coupons.On("ApplyCoupon", mock.Anything, "tok", "EXPIRED", []string{"b1"}).
		Return(nil, apperrors.Upstream(422, "Coupon expired"))

	_, err := svc.ApplyCoupon(context.Background(), sess, "EXPIRED")
	require.Error(t, err)
	assert.Equal(t, "Coupon expired", apperrors.Message(err, "fallback"))
	assert.Nil(t, sess.Coupon)
	store.AssertNotCalled(t, "Save")
}

func TestApplyCoupon_RejectionDiscardsPreviousDiscount(t *testing.T) {
	coupons := new(mockCoupons)
	store := new(mockStore)
	svc := newTestService(nil, coupons, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}
	sess.Token = "tok"
	sess.Coupon = &domain.Discount{Code: "SAVE10", AmountCents: 250}

	coupons.On("ApplyCoupon", mock.Anything, "tok", "EXPIRED", []string{"b1"}).
		Return(nil, apperrors.Upstream(422, "Coupon expired"))
	store.On("Save", mock.Anything, sess).Return(nil)

	_, err := svc.ApplyCoupon(context.Background(), sess, "EXPIRED")
	require.Error(t, err)
	assert.Nil(t, sess.Coupon, "a failed apply must not leave the old discount in place")
	assert.Equal(t, domain.Cart{"b1"}, sess.Cart)
	store.AssertExpectations(t)
}

func TestApplyCoupon_BlankCodeResetsDiscount(t *testing.T) {
	coupons := new(mockCoupons)
	store := new(mockStore)
	svc := newTestService(nil, coupons, store)

	sess := session.New()
	sess.Cart = domain.Cart{"b1"}
	sess.Token = "tok"
	sess.Coupon = &domain.Discount{Code: "SAVE10", AmountCents: 250}

	store.On("Save", mock.Anything, sess).Return(nil)

	_, err := svc.ApplyCoupon(context.Background(), sess, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Nil(t, sess.Coupon)
	coupons.AssertNotCalled(t, "ApplyCoupon")
	store.AssertExpectations(t)
}
