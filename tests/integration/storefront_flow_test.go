package integration

import (
	"net/url"
	"strings"
	"testing"
)

// TestAnonymousBrowsing walks the public pages the way a first-time visitor
// would: landing page, catalog, empty cart.
func TestAnonymousBrowsing(t *testing.T) {
	skipIfNotRunning(t)
	browser := newBrowser(t)

	status, body := getPage(t, browser, "/")
	if status != 200 {
		t.Fatalf("home: got status %d", status)
	}
	if !strings.Contains(body, "BlueLeaf Books") {
		t.Error("home page is missing the brand header")
	}

	status, _ = getPage(t, browser, "/books")
	if status != 200 {
		t.Fatalf("catalog: got status %d", status)
	}

	status, body = getPage(t, browser, "/cart")
	if status != 200 {
		t.Fatalf("cart: got status %d", status)
	}
	if !strings.Contains(body, "Your cart is empty") {
		t.Error("a fresh visitor should see an empty cart")
	}
}

// TestSessionCookiePersistsCart verifies the sid cookie carries the cart
// across requests within one browser session.
func TestSessionCookiePersistsCart(t *testing.T) {
	skipIfNotRunning(t)
	browser := newBrowser(t)

	// Prime the session.
	if status, _ := getPage(t, browser, "/"); status != 200 {
		t.Fatalf("home: got status %d", status)
	}

	// Adding a nonexistent book still round-trips the session; the cart page
	// then reconciles it away against the live catalog.
	postForm(t, browser, "/cart/add", url.Values{"book_id": {"integration-test-ghost"}})

	status, _ := getPage(t, browser, "/cart")
	if status != 200 {
		t.Fatalf("cart after add: got status %d", status)
	}
}

// TestDashboardsRequireLogin checks that every role dashboard turns an
// anonymous visitor toward the login page.
func TestDashboardsRequireLogin(t *testing.T) {
	skipIfNotRunning(t)

	for _, path := range []string{"/dashboard/customer", "/dashboard/author", "/dashboard/admin"} {
		t.Run(path, func(t *testing.T) {
			browser := newBrowser(t)
			getPage(t, browser, "/") // establish a session first

			status, body := getPage(t, browser, path)
			// Redirects are followed, so we land on the login form.
			if status != 200 || !strings.Contains(body, "Log in") {
				t.Errorf("GET %s: expected to land on the login page, got status %d", path, status)
			}
		})
	}
}

// TestCheckoutRequiresLogin verifies checkout is gated.
func TestCheckoutRequiresLogin(t *testing.T) {
	skipIfNotRunning(t)
	browser := newBrowser(t)
	getPage(t, browser, "/")

	status, body := getPage(t, browser, "/checkout")
	if status != 200 {
		t.Fatalf("checkout: got status %d", status)
	}
	// Empty cart bounces to /cart; a seeded cart bounces to /login. Either
	// way the visitor never sees the payment button anonymously.
	if strings.Contains(body, "Pay with PayPal") {
		t.Error("anonymous visitor reached the payment page")
	}
}
