package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/middleware"
)

const testSecret = "test-signing-secret"

// signedToken mints an HS256 token for userID, expiring at exp.
func signedToken(t *testing.T, userID uuid.UUID, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	raw, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

// identityEchoHandler records the user id the middleware resolved.
func identityEchoHandler(got *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = middleware.UserIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthHandler_NoHeader_Anonymous(t *testing.T) {
	var got uuid.UUID
	h := middleware.NewAuthHandler(testSecret)(identityEchoHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AnonymousUserID, got)
}

func TestAuthHandler_ValidToken_ResolvesUser(t *testing.T) {
	userID := uuid.New()
	var got uuid.UUID
	h := middleware.NewAuthHandler(testSecret)(identityEchoHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, userID, time.Now().Add(time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, got)
}

func TestAuthHandler_ExpiredToken_Unauthorized(t *testing.T) {
	var got uuid.UUID
	h := middleware.NewAuthHandler(testSecret)(identityEchoHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, uuid.New(), time.Now().Add(-time.Hour)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_MalformedHeader_Unauthorized(t *testing.T) {
	h := middleware.NewAuthHandler(testSecret)(identityEchoHandler(new(uuid.UUID)))

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_WrongSignature_Unauthorized(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   uuid.New().String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := token.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	h := middleware.NewAuthHandler(testSecret)(identityEchoHandler(new(uuid.UUID)))

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_EmptySecret_IgnoresTokens(t *testing.T) {
	var got uuid.UUID
	h := middleware.NewAuthHandler("")(identityEchoHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.AnonymousUserID, got)
}
