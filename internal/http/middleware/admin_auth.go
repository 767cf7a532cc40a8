package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wolfman30/submissions-dashboard/internal/auth"
)

type contextKey string

const adminClaimsKey contextKey = "adminClaims"

const authRequired = "Authentication required"

// AdminJWT enforces an HMAC-signed session token for admin endpoints and
// rejects tokens that were logged out. revoker may be nil.
func AdminJWT(secret string, revoker auth.Revoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				http.Error(w, "admin auth disabled", http.StatusUnauthorized)
				return
			}
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, authRequired, http.StatusUnauthorized)
				return
			}
			claims := jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, authRequired, http.StatusUnauthorized)
				return
			}
			if revoker != nil && claims.ID != "" {
				revoked, err := revoker.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					http.Error(w, "session check failed", http.StatusServiceUnavailable)
					return
				}
				if revoked {
					http.Error(w, authRequired, http.StatusUnauthorized)
					return
				}
			}
			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaimsFromContext returns admin JWT claims if present.
func AdminClaimsFromContext(ctx context.Context) (jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(jwt.RegisteredClaims)
	return claims, ok
}
