package scheduling

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// DeriveCandidates возвращает метки слотов из недельного шаблона на дату.
// Пустой список, если провайдер не принимает записи или день отсутствует в шаблоне.
// Порядок совпадает с порядком в шаблоне. Бронирования не учитываются.
func DeriveCandidates(provider *domain.Provider, date time.Time) []types.TimeString {
	if provider == nil || !provider.AcceptingBookings {
		return []types.TimeString{}
	}

	slots := provider.WeeklyTemplate.SlotsFor(date.Weekday())
	result := make([]types.TimeString, len(slots))
	copy(result, slots)
	return result
}

// IsOffered проверяет, что метка есть среди кандидатов на дату
func IsOffered(provider *domain.Provider, date time.Time, label types.TimeString) bool {
	for _, candidate := range DeriveCandidates(provider, date) {
		if candidate == label {
			return true
		}
	}
	return false
}

// InTemplate проверяет метку по шаблону без учета флага приема записей.
// Используется при переносе, который инициирует сам провайдер.
func InTemplate(provider *domain.Provider, date time.Time, label types.TimeString) bool {
	if provider == nil {
		return false
	}
	for _, slot := range provider.WeeklyTemplate.SlotsFor(date.Weekday()) {
		if slot == label {
			return true
		}
	}
	return false
}
