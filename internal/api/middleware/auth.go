package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tkardach/SwimClubServer/internal/api/handlers"
)

// TokenHeader заголовок с токеном сессии
const TokenHeader = "x-auth-token"

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
	msgAccessDenied = "Access denied."
)

var errMissingEmail = errors.New("token has no email claim")

// Claims содержимое токена сессии
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверка токенов сессии (HS256)
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(secret string, logger Logger) *Auth {
	return &Auth{secret: []byte(secret), logger: logger}
}

// Required пропускает только запросы с валидным токеном
// Нет токена - 401, невалидный токен - 400
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TokenHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgNoToken)
			return
		}

		caller, err := a.parse(raw)
		if err != nil {
			a.logger.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondBadRequest(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// Optional аутентифицирует запрос, если токен передан
// Запрос без токена проходит дальше без пользователя, невалидный токен - 400
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TokenHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		caller, err := a.parse(raw)
		if err != nil {
			a.logger.Warn("Auth: %s %s - invalid token: %v", r.Method, r.URL.Path, err)
			handlers.RespondBadRequest(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// Admin пропускает только администраторов, ставится после Required
func (a *Auth) Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := CallerFromContext(r.Context())
		if caller == nil || !caller.IsAdmin {
			email := ""
			if caller != nil {
				email = caller.Email
			}
			a.logger.Warn("Auth: %s %s - admin access denied for %q", r.Method, r.URL.Path, email)
			handlers.RespondForbidden(w, msgAccessDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) parse(raw string) (*Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, errMissingEmail
	}

	return &Caller{
		ID:      claims.Subject,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}
