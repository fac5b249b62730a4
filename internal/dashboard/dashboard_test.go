package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blueleafbooks/storefront/internal/domain"
	"github.com/blueleafbooks/storefront/internal/session"
	apperrors "github.com/blueleafbooks/storefront/pkg/errors"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestGuard_NoTokenRedirectsToLogin(t *testing.T) {
	sess := session.New()

	d := Guard(sess, domain.RoleAdmin, time.Now())
	assert.False(t, d.Allow)
	assert.Equal(t, "/login", d.RedirectTo)
}

func TestGuard_ExpiredTokenRedirectsToLogin(t *testing.T) {
	now := time.Now()
	sess := session.New()
	sess.Token = signedToken(t, now.Add(-time.Hour))
	sess.User = &domain.User{Role: domain.RoleAdmin}

	d := Guard(sess, domain.RoleAdmin, now)
	assert.False(t, d.Allow)
	assert.Equal(t, "/login", d.RedirectTo)
}

func TestGuard_WrongRoleRedirectsToOwnDashboard(t *testing.T) {
	now := time.Now()
	sess := session.New()
	sess.Token = signedToken(t, now.Add(time.Hour))
	sess.User = &domain.User{Role: domain.RoleCustomer}

	d := Guard(sess, domain.RoleAdmin, now)
	assert.False(t, d.Allow)
	assert.Equal(t, "/dashboard/customer", d.RedirectTo)
}

func TestGuard_MatchingRoleAllowed(t *testing.T) {
	now := time.Now()
	sess := session.New()
	sess.Token = signedToken(t, now.Add(time.Hour))
	sess.User = &domain.User{Role: domain.RoleAuthor}

	d := Guard(sess, domain.RoleAuthor, now)
	assert.True(t, d.Allow)
}

type mockAdminBackend struct {
	mock.Mock
}

func (m *mockAdminBackend) AdminBooks(ctx context.Context, token string) ([]domain.Book, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

func (m *mockAdminBackend) AdminAuthors(ctx context.Context, token string) ([]domain.AuthorSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorSummary), args.Error(1)
}

func (m *mockAdminBackend) AdminOrders(ctx context.Context, token string) ([]domain.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockAdminBackend) AdminEarnings(ctx context.Context, token string) (*domain.Earnings, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Earnings), args.Error(1)
}

func TestLoadAdmin_AllFetchesSucceed(t *testing.T) {
	backend := new(mockAdminBackend)
	backend.On("AdminBooks", mock.Anything, "tok").
		Return([]domain.Book{{ID: "b1", Status: domain.BookStatusPending}}, nil)
	backend.On("AdminAuthors", mock.Anything, "tok").
		Return([]domain.AuthorSummary{{ID: "a1"}}, nil)
	backend.On("AdminOrders", mock.Anything, "tok").
		Return([]domain.Order{{ID: "o1"}}, nil)
	backend.On("AdminEarnings", mock.Anything, "tok").
		Return(&domain.Earnings{TotalEarningsCents: 100000}, nil)

	dash, err := LoadAdmin(context.Background(), backend, "tok")
	require.NoError(t, err)
	assert.Len(t, dash.Books, 1)
	assert.Len(t, dash.Authors, 1)
	assert.Len(t, dash.Orders, 1)
	assert.Equal(t, int64(100000), dash.Earnings.TotalEarningsCents)
	assert.Len(t, dash.PendingBooks(), 1)
}

func TestLoadAdmin_OneFailureFailsTheDashboard(t *testing.T) {
	backend := new(mockAdminBackend)
	backend.On("AdminBooks", mock.Anything, "tok").
		Return([]domain.Book{}, nil).Maybe()
	backend.On("AdminAuthors", mock.Anything, "tok").
		Return(nil, apperrors.Upstream(502, "authors unavailable"))
	backend.On("AdminOrders", mock.Anything, "tok").
		Return([]domain.Order{}, nil).Maybe()
	backend.On("AdminEarnings", mock.Anything, "tok").
		Return(&domain.Earnings{}, nil).Maybe()

	dash, err := LoadAdmin(context.Background(), backend, "tok")
	require.Error(t, err)
	assert.Nil(t, dash)
	assert.Equal(t, "authors unavailable", apperrors.Message(err, "fallback"))
}

type mockOrderHistory struct {
	mock.Mock
}

func (m *mockOrderHistory) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func TestLoadCustomer_LibraryKeepsCompletedOrdersOnly(t *testing.T) {
	completed := domain.Order{
		ID:            "o1",
		PaymentStatus: domain.PaymentStatusCompleted,
		Items:         []domain.OrderItem{{Book: &domain.Book{ID: "b1"}, PriceCents: 999}},
	}
	pending := domain.Order{
		ID:            "o2",
		PaymentStatus: domain.PaymentStatusPending,
		Items:         []domain.OrderItem{{Book: &domain.Book{ID: "b2"}, PriceCents: 500}},
	}

	history := new(mockOrderHistory)
	history.On("MyOrders", mock.Anything, "tok").
		Return([]domain.Order{completed, pending}, nil)

	view, err := LoadCustomer(context.Background(), history, "tok")
	require.NoError(t, err)
	assert.Len(t, view.Orders, 2)
	require.Len(t, view.Library, 1)
	assert.Equal(t, "b1", view.Library[0].Book.ID)
}

type mockAuthorBackend struct {
	mock.Mock
}

func (m *mockAuthorBackend) AuthorDashboard(ctx context.Context, token string) (*domain.AuthorDashboard, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorDashboard), args.Error(1)
}

func (m *mockAuthorBackend) PayoutSettings(ctx context.Context, token string) (*domain.PayoutSettings, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutSettings), args.Error(1)
}

func TestLoadAuthor_PayoutFailureDegradesToEmptyForm(t *testing.T) {
	backend := new(mockAuthorBackend)
	backend.On("AuthorDashboard", mock.Anything, "tok").
		Return(&domain.AuthorDashboard{BookCount: 3}, nil)
	backend.On("PayoutSettings", mock.Anything, "tok").
		Return(nil, apperrors.Upstream(500, "boom"))

	view, err := LoadAuthor(context.Background(), backend, "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, view.Dashboard.BookCount)
	require.NotNil(t, view.Payout)
	assert.Empty(t, view.Payout.PayPalEmail)
}

func TestLoadAuthor_OverviewFailureFailsThePage(t *testing.T) {
	backend := new(mockAuthorBackend)
	backend.On("AuthorDashboard", mock.Anything, "tok").
		Return(nil, apperrors.Unauthorized("session expired"))

	_, err := LoadAuthor(context.Background(), backend, "tok")
	require.Error(t, err)
	backend.AssertNotCalled(t, "PayoutSettings")
}
