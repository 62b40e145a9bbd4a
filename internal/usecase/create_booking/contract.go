package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ProviderFinder интерфейс поиска провайдера
type ProviderFinder interface {
	FindProvider(ctx context.Context, providerID int64) (*domain.Provider, error)
}

// ConflictDetector интерфейс проверки пересечений
type ConflictDetector interface {
	HasConflict(ctx context.Context, providerID int64, interval domain.Interval, excludeID *int64) (bool, error)
}

// Locker сериализует запись по провайдеру
type Locker interface {
	WithProviderLock(ctx context.Context, providerID int64, fn func(ctx context.Context) error) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений (fire-and-forget)
type Notifier interface {
	Notify(ctx context.Context, event notifier.Event)
}

// Metrics счетчик результатов операций
type Metrics interface {
	ObserveBooking(operation, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
