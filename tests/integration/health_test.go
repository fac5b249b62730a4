package integration

import (
	"net/http"
	"testing"
	"time"
)

// TestHealthEndpoints checks the operational endpoints of a running
// storefront. Unreachable means skip, not fail, so the suite is safe to run
// anywhere.
func TestHealthEndpoints(t *testing.T) {
	skipIfNotRunning(t)

	client := &http.Client{Timeout: 3 * time.Second}

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			resp, err := client.Get(baseURL() + path)
			if err != nil {
				t.Fatalf("GET %s: %v", path, err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("GET %s: got status %d, want 200", path, resp.StatusCode)
			}
		})
	}
}
