package publicip

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxBodySize ответ сервиса - один адрес, больше не читаем
const maxBodySize = 256

// Client клиент сервиса определения внешнего IP (ответ - адрес в виде текста)
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetPublicIP получает текущий внешний IP-адрес сервера
func (c *Client) GetPublicIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	// Обработка статус-кодов
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	ip := strings.TrimSpace(string(body))
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("%w: not an IP address: %q", ErrInvalidResponse, ip)
	}

	return ip, nil
}
