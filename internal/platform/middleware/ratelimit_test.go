package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
)

func doLimitedRequest(t *testing.T, mw echo.MiddlewareFunc, clinicID string) (int, http.Header, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if clinicID != "" {
		c.Set("jwt_clinic_id", clinicID)
	}

	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	return rec.Code, rec.Header(), err
}

func TestRateLimitAllowsBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})

	for i := 0; i < 5; i++ {
		code, hdr, err := doLimitedRequest(t, mw, "")
		if err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
		if code != http.StatusOK {
			t.Fatalf("request %d: got status %d", i, code)
		}
		if got := hdr.Get("X-RateLimit-Limit"); got != "10" {
			t.Fatalf("X-RateLimit-Limit = %q, want 10", got)
		}
	}
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 2})

	for i := 0; i < 2; i++ {
		if _, _, err := doLimitedRequest(t, mw, ""); err != nil {
			t.Fatalf("request %d: unexpected error %v", i, err)
		}
	}

	_, hdr, err := doLimitedRequest(t, mw, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 HTTPError, got %v", err)
	}
	if got := hdr.Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("X-RateLimit-Remaining = %q, want 0", got)
	}
	retry, convErr := strconv.Atoi(hdr.Get("Retry-After"))
	if convErr != nil || retry < 1 {
		t.Fatalf("Retry-After = %q, want integer >= 1", hdr.Get("Retry-After"))
	}
}

func TestRateLimitIsolatesClinics(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})

	if _, _, err := doLimitedRequest(t, mw, "clinic_a"); err != nil {
		t.Fatalf("clinic_a first request: %v", err)
	}
	if _, _, err := doLimitedRequest(t, mw, "clinic_a"); err == nil {
		t.Fatal("clinic_a second request should be limited")
	}
	if _, _, err := doLimitedRequest(t, mw, "clinic_b"); err != nil {
		t.Fatalf("clinic_b should not share clinic_a's bucket: %v", err)
	}
}

func TestRateLimitDefaultConfig(t *testing.T) {
	if DefaultRateLimitConfig.RequestsPerSecond != 100 {
		t.Fatalf("RequestsPerSecond = %v, want 100", DefaultRateLimitConfig.RequestsPerSecond)
	}
	if DefaultRateLimitConfig.BurstSize != 200 {
		t.Fatalf("BurstSize = %d, want 200", DefaultRateLimitConfig.BurstSize)
	}
}

func TestLimiterZeroRateRetryAfter(t *testing.T) {
	lim := newLimiter(RateLimitConfig{RequestsPerSecond: 0, BurstSize: 1})

	if ok, _ := lim.take("k"); !ok {
		t.Fatal("first take should succeed")
	}
	ok, retry := lim.take("k")
	if ok {
		t.Fatal("second take should fail with an empty bucket and no refill")
	}
	if retry != 1 {
		t.Fatalf("retryAfter = %d, want 1", retry)
	}
}

func TestLimiterReusesBucketPerKey(t *testing.T) {
	lim := newLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})

	lim.take("k")
	lim.take("k")
	lim.take("k")
	if ok, _ := lim.take("k"); ok {
		t.Fatal("bucket state should persist across takes for the same key")
	}
	if len(lim.buckets) != 1 {
		t.Fatalf("expected a single bucket, got %d", len(lim.buckets))
	}
}
