package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by the fraud alert APIs. Subject
// identifies the calling client (a job board, a browser extension, a worker).
type Claims struct {
	jwt.RegisteredClaims
	Scopes []string `json:"scopes"`
}

// HasScope reports whether the claims grant scope.
func (c Claims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}

// Scope constants
const (
	ScopeAnalyze = "fraud:analyze"
	ScopeRead    = "fraud:read"
)
