package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseTimeout = time.Second

// Redis распределенная блокировка провайдера: SET NX PX с токеном и снятие через Lua.
// Получение повторяется каждые retryInterval, пока не истечет waitTimeout.
type Redis struct {
	client        redis.Cmdable
	ttl           time.Duration
	retryInterval time.Duration
	waitTimeout   time.Duration
	logger        Logger
}

// NewRedis создает распределенный locker
func NewRedis(client redis.Cmdable, ttl, retryInterval, waitTimeout time.Duration, logger Logger) *Redis {
	return &Redis{
		client:        client,
		ttl:           ttl,
		retryInterval: retryInterval,
		waitTimeout:   waitTimeout,
		logger:        logger,
	}
}

func (l *Redis) WithProviderLock(ctx context.Context, providerID int64, fn func(ctx context.Context) error) error {
	key := lockKey(providerID)
	token := uuid.NewString()

	if err := l.acquire(ctx, key, token); err != nil {
		return err
	}

	defer func() {
		// контекст запроса может быть уже отменен
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := l.release(releaseCtx, key, token); err != nil {
			// ключ останется до истечения ttl
			l.logger.Error("Provider lock %s was not released, held until ttl %s expires: %v", key, l.ttl, err)
		}
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

func (l *Redis) acquire(ctx context.Context, key, token string) error {
	deadline := time.Now().Add(l.waitTimeout)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire provider lock: %w", err)
		}
		if ok {
			return nil
		}

		if time.Now().Add(l.retryInterval).After(deadline) {
			l.logger.Warn("Provider lock %s is still held after %s", key, l.waitTimeout)
			return fmt.Errorf("%w: %s", ErrLockNotAcquired, key)
		}

		l.logger.Debug("Provider lock %s is held, retrying in %s", key, l.retryInterval)
		select {
		case <-time.After(l.retryInterval):
		case <-ctx.Done():
			return fmt.Errorf("%w: %s: %v", ErrLockNotAcquired, key, ctx.Err())
		}
	}
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *Redis) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release provider lock: %w", err)
	}
	return nil
}

func lockKey(providerID int64) string {
	return fmt.Sprintf("lock:provider:%d", providerID)
}
