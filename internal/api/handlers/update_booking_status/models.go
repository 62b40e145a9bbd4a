package update_booking_status

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	updateStatus "github.com/m04kA/SMC-TherapyBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

const dateTimeFormat = domain.DateFormat + "T" + domain.TimeFormat

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status       string  `json:"status"`
	ProviderNote *string `json:"providerNote,omitempty"`
	NewDate      *string `json:"newDate,omitempty"` // только для reschedule_requested
	NewSlotLabel *string `json:"newSlotLabel,omitempty"`
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
	ProviderNote    *string `json:"providerNote,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(actorID, bookingID int64) (*updateStatus.Request, error) {
	req := &updateStatus.Request{
		ActorID:      actorID,
		BookingID:    bookingID,
		Status:       r.Status,
		ProviderNote: r.ProviderNote,
	}

	if r.NewDate != nil {
		date, err := domain.ParseDate(*r.NewDate)
		if err != nil {
			return nil, err
		}
		req.NewDate = &date
	}

	if r.NewSlotLabel != nil {
		label, err := types.NewTimeStringFromString(*r.NewSlotLabel)
		if err != nil {
			return nil, err
		}
		req.NewSlotLabel = &label
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *BookingResponse {
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
		ProviderNote:    resp.ProviderNote,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
