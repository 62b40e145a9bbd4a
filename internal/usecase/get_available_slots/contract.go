package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// ProviderFinder интерфейс поиска провайдера
type ProviderFinder interface {
	FindProvider(ctx context.Context, providerID int64) (*domain.Provider, error)
}

// ConflictDetector интерфейс проверки занятости слотов
type ConflictDetector interface {
	FreeSlots(ctx context.Context, providerID int64, date time.Time, candidates []types.TimeString, durationMinutes int) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
