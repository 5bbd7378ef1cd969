package middleware

import "context"

type callerKey struct{}

// Caller пользователь из токена сессии
type Caller struct {
	ID      string
	Email   string
	IsAdmin bool
}

// WithCaller кладет пользователя в контекст запроса
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext возвращает пользователя сессии, nil если запрос без токена
func CallerFromContext(ctx context.Context) *Caller {
	caller, _ := ctx.Value(callerKey{}).(*Caller)
	return caller
}
