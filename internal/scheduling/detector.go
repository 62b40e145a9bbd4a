package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// Detector проверяет пересечения с существующими бронированиями провайдера
type Detector struct {
	bookingRepo BookingRepository
}

// NewDetector создает детектор конфликтов
func NewDetector(bookingRepo BookingRepository) *Detector {
	return &Detector{bookingRepo: bookingRepo}
}

// HasConflict возвращает true, если интервал пересекается хотя бы с одним
// бронированием провайдера в статусе, отличном от rejected.
// excludeID исключает само бронирование при переносе.
func (d *Detector) HasConflict(ctx context.Context, providerID int64, interval domain.Interval, excludeID *int64) (bool, error) {
	bookings, err := d.bookingRepo.ListOccupying(ctx, providerID, interval, excludeID)
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - provider %d: %w", ErrLedger, providerID, err)
	}

	return overlapsAny(interval, bookings), nil
}

// FreeSlots фильтрует кандидатов, оставляя метки без пересечений.
// Бронирования за день читаются одним запросом.
func (d *Detector) FreeSlots(ctx context.Context, providerID int64, date time.Time, candidates []types.TimeString, durationMinutes int) ([]types.TimeString, error) {
	free := make([]types.TimeString, 0, len(candidates))
	if len(candidates) == 0 {
		return free, nil
	}

	day := domain.DateOnly(date)
	dayRange := domain.Interval{
		Start: day,
		End:   day.Add(24*time.Hour + time.Duration(durationMinutes)*time.Minute),
	}

	bookings, err := d.bookingRepo.ListOccupying(ctx, providerID, dayRange, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: FreeSlots - provider %d: %w", ErrLedger, providerID, err)
	}

	for _, label := range candidates {
		interval, err := domain.NewSlotInterval(day, label, durationMinutes)
		if err != nil {
			continue
		}
		if !overlapsAny(interval, bookings) {
			free = append(free, label)
		}
	}

	return free, nil
}

func overlapsAny(interval domain.Interval, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if booking.OccupiesSlot() && booking.Interval().Overlaps(interval) {
			return true
		}
	}
	return false
}
