package auth

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/minishop/order/internal/transport/http/response"
)

// Identity is the authenticated caller resolved from the bearer token.
type Identity struct {
	ID    int64
	Email string
	Role  string
}

type identityKey struct{}

// FromContext returns the caller identity stored by Verify.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)

	return id, ok
}

func secret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

type claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Verify resolves the caller identity from the Authorization header before
// any order handler runs.
func Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")

			return
		}

		var c claims
		parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}

			return secret(), nil
		})
		if err != nil || !parsed.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(w, http.StatusUnauthorized, "Token expired")

				return
			}
			response.Error(w, http.StatusUnauthorized, "Invalid token")

			return
		}

		identity := Identity{
			ID:    c.ID,
			Email: c.Email,
			Role:  c.Role,
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
	})
}

// RequireAdmin guards privileged routes. Must run after Verify.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := FromContext(r.Context())
		if !ok || identity.Role != "admin" {
			response.Error(w, http.StatusForbidden, "Access denied. Admin only.")

			return
		}

		next.ServeHTTP(w, r)
	})
}
