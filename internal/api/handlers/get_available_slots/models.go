package get_available_slots

import (
	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TherapyBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string   `json:"date"`
	ProviderID int64    `json:"providerId"`
	Slots      []string `json:"slots"`
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(providerID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: providerID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.String())
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ProviderID: resp.ProviderID,
		Slots:      slots,
	}
}
