package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID     int64            // ID заказчика (из X-User-ID)
	ProviderID      int64            // ID провайдера
	Date            time.Time        // Дата (без времени)
	SlotLabel       types.TimeString // Метка слота, например "09:00"
	Mode            string           // video | chat | in_person
	DurationMinutes int              // 0 = по умолчанию (60)
	Reason          *string          // Причина обращения (опционально)
}

// Response модель ответа с созданным бронированием
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
