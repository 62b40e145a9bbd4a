package availability

import (
	"context"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
)

// ProviderFinder интерфейс поиска провайдера
type ProviderFinder interface {
	FindProvider(ctx context.Context, providerID int64) (*domain.Provider, error)
}

// AvailabilityRepository интерфейс хранилища расписаний
type AvailabilityRepository interface {
	Set(ctx context.Context, providerID int64, template domain.WeeklyTemplate) (*domain.Availability, error)
	SetAcceptingBookings(ctx context.Context, providerID int64, accepting bool) (*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
