package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-TherapyBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

const dateTimeFormat = domain.DateFormat + "T" + domain.TimeFormat

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID      int64   `json:"providerId"`
	Date            string  `json:"date"`      // "2025-06-02"
	SlotLabel       string  `json:"slotLabel"` // "09:00"
	Mode            string  `json:"mode"`      // video | chat | in_person
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Reason          *string `json:"reason,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	RequesterID     int64   `json:"requesterId"`
	ProviderID      int64   `json:"providerId"`
	Start           string  `json:"start"`
	End             string  `json:"end"`
	Date            string  `json:"date"`
	SlotLabel       string  `json:"slotLabel"`
	DurationMinutes int     `json:"durationMinutes"`
	Mode            string  `json:"mode"`
	Reason          *string `json:"reason,omitempty"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (дата и метка парсятся здесь)
func (r *CreateBookingRequest) ToUseCaseRequest(requesterID int64) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	label, err := types.NewTimeStringFromString(r.SlotLabel)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RequesterID:     requesterID,
		ProviderID:      r.ProviderID,
		Date:            date,
		SlotLabel:       label,
		Mode:            r.Mode,
		DurationMinutes: r.DurationMinutes,
		Reason:          r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		RequesterID:     resp.RequesterID,
		ProviderID:      resp.ProviderID,
		Start:           resp.Start.Format(dateTimeFormat),
		End:             resp.End.Format(dateTimeFormat),
		Date:            resp.CalendarDate.Format(domain.DateFormat),
		SlotLabel:       resp.SlotLabel.String(),
		DurationMinutes: resp.DurationMinutes,
		Mode:            resp.Mode,
		Reason:          resp.Reason,
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
