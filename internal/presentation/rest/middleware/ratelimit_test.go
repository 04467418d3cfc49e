package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCounter struct {
	allow bool
	err   error
	calls int
}

func (f *fakeCounter) Allow(_ context.Context, _ string) (bool, error) {
	f.calls++
	return f.allow, f.err
}

func TestRateLimiter_BurstPerClient(t *testing.T) {
	rl := NewRateLimiter(1, 3, nil, discardLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(ctx, "10.0.0.1"), "request %d", i+1)
	}
	assert.False(t, rl.Allow(ctx, "10.0.0.1"))

	// Other clients have their own bucket.
	assert.True(t, rl.Allow(ctx, "10.0.0.2"))
}

func TestRateLimiter_GlobalCounter(t *testing.T) {
	ctx := context.Background()

	deny := &fakeCounter{allow: false}
	assert.False(t, NewRateLimiter(10, 10, deny, discardLogger()).Allow(ctx, "c"))
	assert.Equal(t, 1, deny.calls)

	// An unreachable counter fails open.
	broken := &fakeCounter{err: errors.New("connection refused")}
	assert.True(t, NewRateLimiter(10, 10, broken, discardLogger()).Allow(ctx, "c"))
}

func TestRateLimiter_LocalDenialSkipsGlobal(t *testing.T) {
	counter := &fakeCounter{allow: true}
	rl := NewRateLimiter(1, 1, counter, discardLogger())

	rl.Allow(context.Background(), "c")
	rl.Allow(context.Background(), "c")

	assert.Equal(t, 1, counter.calls)
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1, nil, discardLogger())
	rl.Allow(context.Background(), "old")

	rl.mu.Lock()
	rl.clients["old"].lastSeen = time.Now().Add(-2 * idleLimiterTTL)
	rl.lastSweep = time.Now().Add(-2 * sweepInterval)
	rl.mu.Unlock()

	rl.Allow(context.Background(), "new")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "old")
	assert.Contains(t, rl.clients, "new")
}

func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(NewRateLimiter(1, 1, nil, discardLogger()))(okHandler())

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/fraud-detection/health", nil)
		req.RemoteAddr = "192.0.2.7:41234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Contains(t, rec.Body.String(), `"error":"RATE_LIMITED"`)
			assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRedisCounter_UnreachableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ok, err := NewRedisCounter(client, 5, time.Minute).Allow(context.Background(), "c")

	assert.Error(t, err)
	assert.True(t, ok)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:5555"
	assert.Equal(t, "198.51.100.4", clientIP(req))

	req.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", clientIP(req))
}
