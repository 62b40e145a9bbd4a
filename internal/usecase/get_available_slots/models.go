package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID int64     // ID провайдера
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time          // Дата, на которую запрашивались слоты
	ProviderID int64              // ID провайдера
	Slots      []types.TimeString // Свободные метки в порядке шаблона
}
