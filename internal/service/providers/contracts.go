package providers

import (
	"context"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/directory"
)

// DirectoryClient интерфейс клиента справочника пользователей
type DirectoryClient interface {
	FindUser(ctx context.Context, userID int64) (*directory.User, error)
}

// AvailabilityRepository интерфейс хранилища расписаний
type AvailabilityRepository interface {
	Get(ctx context.Context, providerID int64) (*domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
