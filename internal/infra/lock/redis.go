package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL           = 30 * time.Second
	defaultWait          = 10 * time.Second
	defaultRetryInterval = 50 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisLocker распределенная блокировка на SET NX PX
type RedisLocker struct {
	client        redis.Cmdable
	ttl           time.Duration
	wait          time.Duration
	retryInterval time.Duration
	logger        Logger
}

// NewRedisLocker создает локер поверх redis
// ttl ограничивает время жизни ключа, wait - время ожидания захвата
func NewRedisLocker(client redis.Cmdable, ttl, wait time.Duration, logger Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if wait <= 0 {
		wait = defaultWait
	}
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		wait:          wait,
		retryInterval: defaultRetryInterval,
		logger:        logger,
	}
}

// WithLock выполняет fn, удерживая блокировку key
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}

	defer l.release(ctx, key, token)

	return fn(ctx)
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil {
			if waitCtx.Err() != nil {
				return ErrLockTimeout
			}
			return fmt.Errorf("%w: acquire %s: %v", ErrLockFailed, key, err)
		}
		if ok {
			return nil
		}

		select {
		case <-waitCtx.Done():
			l.logger.Warn("Lock: timed out waiting for %s", key)
			return ErrLockTimeout
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(ctx context.Context, key, token string) {
	// Снимаем блокировку даже если контекст запроса уже отменен
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()

	deleted, err := releaseScript.Run(releaseCtx, l.client, []string{key}, token).Int()
	if err != nil {
		l.logger.Error("Lock: failed to release %s: %v", key, err)
		return
	}
	if deleted == 0 {
		l.logger.Warn("Lock: %s expired before release", key)
	}
}
