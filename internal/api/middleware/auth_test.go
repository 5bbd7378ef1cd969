package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkardach/SwimClubServer/pkg/logger"
)

const secret = "test-secret"

// echoCaller отвечает email пользователя из контекста или "anonymous"
func echoCaller() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := CallerFromContext(r.Context())
		if caller == nil {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(caller.Email))
	})
}

func signToken(t *testing.T, key string, caller Caller) string {
	t.Helper()
	claims := Claims{
		Email:   caller.Email,
		IsAdmin: caller.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return tok
}

func token(t *testing.T, caller Caller) string {
	return signToken(t, secret, caller)
}

func serve(h http.Handler, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if tok != "" {
		req.Header.Set(TokenHeader, tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequired(t *testing.T) {
	auth := NewAuth(secret, logger.NewNop())
	h := auth.Required(echoCaller())

	t.Run("valid token", func(t *testing.T) {
		rec := serve(h, token(t, Caller{ID: "u1", Email: "smith@example.com"}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "smith@example.com", rec.Body.String())
	})

	t.Run("no token", func(t *testing.T) {
		rec := serve(h, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), msgNoToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := serve(h, "not-a-jwt")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), msgInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signToken(t, "other-secret", Caller{Email: "smith@example.com"})
		assert.Equal(t, http.StatusBadRequest, serve(h, tok).Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := Claims{
			Email: "smith@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, serve(h, tok).Code)
	})

	t.Run("token without email", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(h, token(t, Caller{ID: "u1"})).Code)
	})

	t.Run("non-HS256 algorithm rejected", func(t *testing.T) {
		claims := Claims{Email: "smith@example.com"}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, serve(h, tok).Code)
	})
}

func TestOptional(t *testing.T) {
	auth := NewAuth(secret, logger.NewNop())
	h := auth.Optional(echoCaller())

	assert.Equal(t, "anonymous", serve(h, "").Body.String())
	assert.Equal(t, "smith@example.com", serve(h, token(t, Caller{Email: "smith@example.com"})).Body.String())
	assert.Equal(t, http.StatusBadRequest, serve(h, "broken").Code)
}

func TestAdmin(t *testing.T) {
	auth := NewAuth(secret, logger.NewNop())
	h := auth.Required(auth.Admin(echoCaller()))

	t.Run("admin", func(t *testing.T) {
		rec := serve(h, token(t, Caller{Email: "admin@example.com", IsAdmin: true}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("member", func(t *testing.T) {
		rec := serve(h, token(t, Caller{Email: "smith@example.com"}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), msgAccessDenied)
	})

	t.Run("no session", func(t *testing.T) {
		rec := serve(auth.Admin(echoCaller()), "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
