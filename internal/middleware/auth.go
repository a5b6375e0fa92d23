package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/bryanwahyu/vision-analyzer/internal/domain/identity"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// Verifier validates a bearer credential and yields the decoded claims.
// Token internals (JWKS fetch, signature checks) live behind this port.
type Verifier interface {
	Verify(ctx context.Context, token string) (identity.Claims, error)
}

// BearerAuth validates the Authorization header via the verifier and stores
// the decoded claims in the request context. Verification failures reject
// the request before any core logic runs.
func BearerAuth(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeAuthError(w, "missing Authorization header")
				return
			}

			// Support both "Bearer <token>" and "<token>" formats
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeAuthError(w, "invalid Authorization header format")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeAuthError(w, "invalid credentials")
				return
			}
			if claims.Subject() == "" {
				writeAuthError(w, "token is missing a subject")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the verified claims stored by BearerAuth.
func ClaimsFromContext(ctx context.Context) (identity.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(identity.Claims)
	return claims, ok
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error":   "authentication failed",
		"message": message,
	})
}
