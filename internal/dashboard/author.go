package dashboard

import (
	"context"

	"github.com/blueleafbooks/storefront/internal/domain"
)

// AuthorBackend fetches the author-facing resources.
type AuthorBackend interface {
	AuthorDashboard(ctx context.Context, token string) (*domain.AuthorDashboard, error)
	PayoutSettings(ctx context.Context, token string) (*domain.PayoutSettings, error)
}

// AuthorView is the author dashboard model.
type AuthorView struct {
	Dashboard *domain.AuthorDashboard
	Payout    *domain.PayoutSettings
}

// LoadAuthor builds the author dashboard. The overview is required; payout
// settings are decorative, so a failure there degrades to an empty form
// instead of failing the page.
func LoadAuthor(ctx context.Context, backend AuthorBackend, token string) (*AuthorView, error) {
	overview, err := backend.AuthorDashboard(ctx, token)
	if err != nil {
		return nil, err
	}

	payout, err := backend.PayoutSettings(ctx, token)
	if err != nil {
		payout = &domain.PayoutSettings{}
	}

	return &AuthorView{Dashboard: overview, Payout: payout}, nil
}
