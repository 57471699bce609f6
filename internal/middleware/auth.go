package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFrom returns the authenticated user's id from the request context,
// or domain.AnonymousUserID when the request carried no token.
func UserIDFrom(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok {
		return id
	}
	return domain.AnonymousUserID
}

// NewAuthHandler returns a middleware that resolves the caller's identity
// from an optional Bearer token. Requests without an Authorization header
// proceed as the anonymous user; requests with a token must present a
// valid HMAC-signed JWT whose subject is the user's UUID, or they are
// rejected with 401.
//
// With an empty secret, token validation is disabled and every request is
// anonymous.
func NewAuthHandler(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			userID, err := parseSubject(raw, secret)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseSubject validates the token signature and expiry and extracts the
// subject claim as a UUID.
func parseSubject(raw, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return uuid.Nil, err
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(sub)
}
