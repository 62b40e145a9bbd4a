package lock

import (
	"context"
	"errors"
)

var (
	// ErrLockNotAcquired возвращается, когда блокировку не удалось получить за время ожидания
	ErrLockNotAcquired = errors.New("lock: provider lock not acquired")
)

// Locker сериализует операции записи по одному провайдеру
type Locker interface {
	WithProviderLock(ctx context.Context, providerID int64, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
