package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

// ErrCredentials возвращается, когда не удалось получить учетные данные Google
var ErrCredentials = errors.New("googleauth: failed to load credentials")

// NewHTTPClient возвращает http-клиент, подписывающий запросы токеном сервисного аккаунта
// Пустой credentialsFile означает Application Default Credentials
func NewHTTPClient(ctx context.Context, credentialsFile string, scopes ...string) (*http.Client, error) {
	if credentialsFile == "" {
		client, err := google.DefaultClient(ctx, scopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: default credentials: %v", ErrCredentials, err)
		}
		return client, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCredentials, credentialsFile, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCredentials, credentialsFile, err)
	}

	return jwtConfig.Client(ctx), nil
}
