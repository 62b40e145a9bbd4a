package scheduling

import (
	"context"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
)

// BookingRepository источник занятых интервалов
type BookingRepository interface {
	// ListOccupying возвращает бронирования провайдера (кроме rejected), пересекающиеся с интервалом
	ListOccupying(ctx context.Context, providerID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error)
}
