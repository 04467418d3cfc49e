package auth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryAuthInterceptor validates the bearer token in the "authorization"
// metadata and stores the claims in the handler context. Full method names
// in skipMethods are served without a token.
func UnaryAuthInterceptor(jwtService *JWTService, skipMethods []string) grpc.UnaryServerInterceptor {
	skip := make(map[string]bool, len(skipMethods))
	for _, m := range skipMethods {
		skip[m] = true
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if skip[info.FullMethod] {
			return handler(ctx, req)
		}
		claims, err := authenticate(ctx, jwtService)
		if err != nil {
			return nil, err
		}
		return handler(ContextWithClaims(ctx, claims), req)
	}
}

func authenticate(ctx context.Context, jwtService *JWTService) (*Claims, error) {
	values := metadata.ValueFromIncomingContext(ctx, "authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization metadata")
	}
	token, ok := BearerToken(values[0])
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authorization must be a bearer token")
	}
	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	return claims, nil
}

// RequireScopes enforces a per-method scope on claims placed by
// UnaryAuthInterceptor. Methods absent from methodScopes are not checked.
func RequireScopes(methodScopes map[string]string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		scope, guarded := methodScopes[info.FullMethod]
		if !guarded {
			return handler(ctx, req)
		}
		claims, ok := ClaimsFromContext(ctx)
		switch {
		case !ok:
			return nil, status.Error(codes.Unauthenticated, "unauthenticated")
		case !claims.HasScope(scope):
			return nil, status.Errorf(codes.PermissionDenied, "missing scope %s", scope)
		}
		return handler(ctx, req)
	}
}
