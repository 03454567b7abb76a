package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPRateLimiter_LimitsPerIP(t *testing.T) {
	rl := newIPRateLimiter(1, 2)
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do("192.0.2.1:1000"); code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", code)
	}
	if code := do("192.0.2.1:1000"); code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", code)
	}
	if code := do("192.0.2.1:1000"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", code)
	}

	// Another client is unaffected.
	if code := do("192.0.2.2:1000"); code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", code)
	}
}

func TestIPRateLimiter_RetryAfterHeader(t *testing.T) {
	rl := newIPRateLimiter(0.5, 1)
	defer rl.Stop()

	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "192.0.2.1:1000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "2" {
		t.Errorf("expected Retry-After 2, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestIPRateLimiter_RouterIntegration(t *testing.T) {
	cfg := testRouterConfig()
	cfg.AuthRateLimitRPS = 1
	cfg.AuthRateLimitBurst = 3
	handler := newTestRouter(t, cfg)

	body := map[string]string{"email": "nobody@example.com", "password": "password123"}

	var last int
	for i := 0; i < 4; i++ {
		last = doJSON(t, handler, http.MethodPost, "/api/auth/login", "", body).Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", last)
	}
}
