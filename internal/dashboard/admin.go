package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/blueleafbooks/storefront/internal/domain"
)

// AdminBackend fetches the four admin overview resources.
type AdminBackend interface {
	AdminBooks(ctx context.Context, token string) ([]domain.Book, error)
	AdminAuthors(ctx context.Context, token string) ([]domain.AuthorSummary, error)
	AdminOrders(ctx context.Context, token string) ([]domain.Order, error)
	AdminEarnings(ctx context.Context, token string) (*domain.Earnings, error)
}

// LoadAdmin fetches the admin overview concurrently. All four resources must
// load; if any fails the whole dashboard fails, so the admin never acts on a
// partially populated view.
func LoadAdmin(ctx context.Context, backend AdminBackend, token string) (*domain.AdminDashboard, error) {
	var dash domain.AdminDashboard

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		books, err := backend.AdminBooks(ctx, token)
		if err != nil {
			return err
		}
		dash.Books = books
		return nil
	})

	g.Go(func() error {
		authors, err := backend.AdminAuthors(ctx, token)
		if err != nil {
			return err
		}
		dash.Authors = authors
		return nil
	})

	g.Go(func() error {
		orders, err := backend.AdminOrders(ctx, token)
		if err != nil {
			return err
		}
		dash.Orders = orders
		return nil
	})

	g.Go(func() error {
		earnings, err := backend.AdminEarnings(ctx, token)
		if err != nil {
			return err
		}
		dash.Earnings = *earnings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}
