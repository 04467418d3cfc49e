package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	idleLimiterTTL = 10 * time.Minute
	sweepInterval  = time.Minute
)

// GlobalCounter enforces a limit shared by every replica.
type GlobalCounter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisCounter is a fixed-window counter kept in Redis with INCR and EXPIRE.
type RedisCounter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisCounter allows limit requests per key in each window.
func NewRedisCounter(client redis.Cmdable, limit int64, window time.Duration) *RedisCounter {
	return &RedisCounter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "fraudalert:ratelimit:",
	}
}

// Allow increments the counter for key and reports whether it is within the limit.
func (c *RedisCounter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := c.prefix + key + ":" + strconv.FormatInt(time.Now().Truncate(c.window).Unix(), 10)

	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= c.limit, nil
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client, optionally backed by a
// GlobalCounter.
type RateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientEntry
	limit     rate.Limit
	burst     int
	global    GlobalCounter
	logger    *slog.Logger
	lastSweep time.Time
}

// NewRateLimiter allows rps requests per second per client with the given
// burst. global may be nil.
func NewRateLimiter(rps float64, burst int, global GlobalCounter, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		clients:   make(map[string]*clientEntry),
		limit:     rate.Limit(rps),
		burst:     burst,
		global:    global,
		logger:    logger,
		lastSweep: time.Now(),
	}
}

// Allow reports whether a request from client is permitted. The global
// counter fails open when it cannot be reached.
func (rl *RateLimiter) Allow(ctx context.Context, client string) bool {
	if !rl.local(client).Allow() {
		return false
	}
	if rl.global == nil {
		return true
	}
	ok, err := rl.global.Allow(ctx, client)
	if err != nil {
		rl.logger.WarnContext(ctx, "global rate limit unavailable, using local limit only", "error", err)
		return true
	}
	return ok
}

func (rl *RateLimiter) local(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > sweepInterval {
		for k, e := range rl.clients {
			if now.Sub(e.lastSeen) > idleLimiterTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	e, ok := rl.clients[client]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[client] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimit applies rate limiting per client IP.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
