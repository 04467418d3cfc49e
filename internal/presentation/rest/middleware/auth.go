package middleware

import (
	"net/http"

	"github.com/dhxnujaK/Fraud-Alert-LK/pkg/auth"
)

// Auth requires a valid bearer token on every path except publicPaths and
// CORS preflights. Validated claims travel in the request context.
func Auth(jwtService *auth.JWTService, publicPaths []string) Middleware {
	public := make(map[string]bool, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="fraudalert"`)
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "bearer token required")
				return
			}
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireScope answers 403 when the caller's claims lack scope. Without
// claims in the context (auth disabled) it does nothing.
func RequireScope(scope string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok && !claims.HasScope(scope) {
			WriteError(w, http.StatusForbidden, "FORBIDDEN", "missing scope "+scope)
			return
		}
		next.ServeHTTP(w, r)
	})
}
