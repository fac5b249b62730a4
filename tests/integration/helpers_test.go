package integration

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

// baseURL returns the storefront under test. Defaults to a local instance;
// override with STOREFRONT_URL.
func baseURL() string {
	if v := os.Getenv("STOREFRONT_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://localhost:8080"
}

// skipIfNotRunning skips the test when no storefront is reachable, so the
// suite can run in environments without the stack up.
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("storefront not reachable at %s: %v", baseURL(), err)
	}
	resp.Body.Close()
}

// newBrowser returns a client that keeps cookies, like a real visitor, and
// follows redirects.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

// getPage fetches a page and returns the status and body.
func getPage(t *testing.T, client *http.Client, path string) (int, string) {
	t.Helper()
	resp, err := client.Get(baseURL() + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp.StatusCode, string(body)
}

// postForm submits a form and returns the final status and body after
// redirects.
func postForm(t *testing.T, client *http.Client, path string, form url.Values) (int, string) {
	t.Helper()
	resp, err := client.PostForm(baseURL()+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp.StatusCode, string(body)
}
