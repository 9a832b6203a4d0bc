package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/livefit/livefit-api/internal/pkg/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestIDPropagates(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen != "abc" || w.Header().Get("X-Request-ID") != "abc" {
		t.Fatalf("expected request id abc, got ctx=%q header=%q", seen, w.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDGenerated(t *testing.T) {
	w := httptest.NewRecorder()
	RequestID(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}
}

func TestRecoverReturns500(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLoggerKeepsStatus(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	if got := getClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected first forwarded ip, got %q", got)
	}
}

func TestRateLimiterDisabledWithoutRedis(t *testing.T) {
	h := NewRateLimiter(nil).Limit("api", 1, time.Minute)(okHandler())
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	w := httptest.NewRecorder()
	NewRateLimiter(rdb).Limit("api", 1, time.Minute)(okHandler()).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 when redis is unreachable, got %d", w.Code)
	}
}

func TestRequestIDRejectsUnsafeHeader(t *testing.T) {
	for _, bad := range []string{"has space", strings.Repeat("x", maxRequestIDLen+1), "line\nbreak"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", bad)
		w := httptest.NewRecorder()
		RequestID(okHandler()).ServeHTTP(w, req)
		if got := w.Header().Get("X-Request-ID"); got == bad || got == "" {
			t.Fatalf("expected a generated id for %q, got %q", bad, got)
		}
	}
}

func TestRecoverRepanicsOnAbort(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestStatusRecorderCountsBytes(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.Write([]byte("hello"))
	rec.WriteHeader(http.StatusNotFound)
	if rec.bytes != 5 || rec.status != http.StatusOK {
		t.Fatalf("expected 5 bytes and status 200, got %d bytes status %d", rec.bytes, rec.status)
	}
}

func TestCORSPreflight(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		origin      string
		allowed     bool
		credentials bool
	}{
		{"listed origin", []string{"https://app.livefit.test"}, "https://app.livefit.test", true, true},
		{"unlisted origin", []string{"https://app.livefit.test"}, "https://evil.test", false, false},
		{"wildcard", []string{"*"}, "https://any.test", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			CORSHandler(tt.origins)(okHandler()).ServeHTTP(w, req)

			allowOrigin := w.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed && allowOrigin == "" {
				t.Fatal("expected Access-Control-Allow-Origin")
			}
			if !tt.allowed && allowOrigin != "" {
				t.Fatalf("unexpected Access-Control-Allow-Origin %q", allowOrigin)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials") == "true"; got != tt.credentials {
				t.Fatalf("expected credentials %v, got %v", tt.credentials, got)
			}
		})
	}
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15, DialTimeout: 200 * time.Millisecond, MaxRetries: -1})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		rdb.Close()
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRateLimiterHitSetsExpiry(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()
	key := "rate_limit:test:" + uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, key) })

	// a counter left without TTL must get one on the next hit
	if err := rdb.Set(ctx, key, 3, 0).Err(); err != nil {
		t.Fatalf("seed key: %v", err)
	}

	rl := NewRateLimiter(rdb)
	count, err := rl.hit(ctx, key, time.Minute)
	if err != nil {
		t.Fatalf("hit: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}
	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected ttl within window, got %s (%v)", ttl, err)
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rdb := setupTestRedis(t)
	suffix := "test-" + uuid.NewString()
	h := NewRateLimiter(rdb).Limit(suffix, 2, time.Minute)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	rdb.Del(context.Background(), "rate_limit:"+suffix+":203.0.113.9:4000")

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}
