package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blueleafbooks/storefront/pkg/health"
	"github.com/blueleafbooks/storefront/pkg/middleware"
)

// RouterConfig carries what the router needs beyond the handlers.
type RouterConfig struct {
	ServiceName    string
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter assembles the storefront's route tree and middleware chain.
func NewRouter(cfg RouterConfig, h *Handler, sessions *SessionMiddleware, healthHandler *health.Handler, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	// Operational endpoints stay outside the session layer.
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/static/site.css", siteCSS)

	r.Group(func(r chi.Router) {
		r.Use(sessions.Handler)

		r.Get("/", h.Home)
		r.Get("/books", h.Catalog)
		r.Get("/books/{id}", h.BookDetail)

		r.Get("/cart", h.CartPage)
		r.Post("/cart/add", h.CartAdd)
		r.Post("/cart/remove", h.CartRemove)
		r.Post("/cart/coupon", h.CartCoupon)
		r.Post("/cart/coupon/remove", h.CartCouponRemove)

		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)
		r.Post("/logout", h.Logout)

		r.Get("/checkout", h.CheckoutPage)
		r.Post("/checkout/paypal", h.CheckoutPayPal)
		r.Get("/checkout/paypal/return", h.CheckoutPayPalReturn)

		r.Get("/dashboard/customer", h.DashboardCustomer)

		r.Route("/dashboard/author", func(r chi.Router) {
			r.Get("/", h.DashboardAuthor)
			r.Get("/books/new", h.AuthorBookNew)
			r.Post("/books", h.AuthorBookCreate)
			r.Get("/books/{id}/edit", h.AuthorBookEdit)
			r.Post("/books/{id}", h.AuthorBookUpdate)
			r.Post("/books/{id}/delete", h.AuthorBookDelete)
			r.Post("/payout", h.AuthorPayoutUpdate)
			r.Get("/reports", h.AuthorReport)
		})

		r.Route("/dashboard/admin", func(r chi.Router) {
			r.Get("/", h.DashboardAdmin)
			r.Post("/books/{id}/status", h.AdminBookStatus)
			r.Post("/books/{id}/delete", h.AdminBookDelete)
			r.Post("/payouts/{authorID}/paid", h.AdminPayoutPaid)
			r.Post("/coupons", h.AdminCouponCreate)
			r.Post("/coupons/{id}/toggle", h.AdminCouponToggle)
			r.Post("/coupons/{id}/delete", h.AdminCouponDelete)
		})
	})

	return r
}
