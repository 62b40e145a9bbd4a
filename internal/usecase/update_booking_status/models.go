package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// Request модель запроса на смену статуса
type Request struct {
	ActorID      int64             // ID участника (из X-User-ID)
	BookingID    int64             // ID бронирования
	Status       string            // Новый статус
	ProviderNote *string           // Заметка провайдера (опционально)
	NewDate      *time.Time        // Новая дата, только для reschedule_requested
	NewSlotLabel *types.TimeString // Новая метка, только для reschedule_requested
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64
	RequesterID     int64
	ProviderID      int64
	Start           time.Time
	End             time.Time
	CalendarDate    time.Time
	SlotLabel       types.TimeString
	DurationMinutes int
	Mode            string
	Reason          *string
	Status          string
	ProviderNote    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
