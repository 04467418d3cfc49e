package rest

import (
	"log/slog"
	"net/http"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/rest/middleware"
	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/auth"
)

// Paths that never require authentication.
var publicPaths = []string{
	"/fraud-detection/health",
	"/healthz",
	"/readyz",
	"/metrics",
}

// RouterConfig collects the dependencies of the HTTP API.
type RouterConfig struct {
	Fraud   *FraudHandler
	Health  *HealthHandler
	Metrics http.Handler
	// HTTPMetrics is optional; nil disables request metrics.
	HTTPMetrics *middleware.Metrics
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *middleware.RateLimiter
	// JWT is optional; nil disables authentication.
	JWT    *auth.JWTService
	Logger *slog.Logger
}

// NewRouter registers every route and wraps the mux in the middleware chain:
// recover, logging, metrics, CORS, rate limit, auth.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, middleware.RoutePattern(h))
	}

	handle("GET /fraud-detection/health", http.HandlerFunc(cfg.Health.Status))
	handle("GET /healthz", http.HandlerFunc(cfg.Health.Healthz))
	handle("GET /readyz", http.HandlerFunc(cfg.Health.Readyz))
	if cfg.Metrics != nil {
		handle("GET /metrics", cfg.Metrics)
	}

	handle("POST /fraud-detection/analyze-text",
		middleware.RequireScope(auth.ScopeAnalyze, http.HandlerFunc(cfg.Fraud.AnalyzeText)))
	handle("POST /fraud-detection/analyze",
		middleware.RequireScope(auth.ScopeAnalyze, http.HandlerFunc(cfg.Fraud.AnalyzeImage)))
	handle("GET /fraud-detection/assessments/{id}",
		middleware.RequireScope(auth.ScopeRead, http.HandlerFunc(cfg.Fraud.GetAssessment)))

	mux.HandleFunc("/", NotFound)

	var mws []middleware.Middleware
	mws = append(mws, middleware.Recover(cfg.Logger), middleware.Logging(cfg.Logger))
	if cfg.HTTPMetrics != nil {
		mws = append(mws, cfg.HTTPMetrics.Middleware())
	}
	mws = append(mws, middleware.CORS())
	if cfg.RateLimiter != nil {
		mws = append(mws, middleware.RateLimit(cfg.RateLimiter))
	}
	if cfg.JWT != nil {
		mws = append(mws, middleware.Auth(cfg.JWT, publicPaths))
	}

	return middleware.Chain(mux, mws...)
}
