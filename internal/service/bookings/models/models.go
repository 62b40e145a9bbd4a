package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidRole возвращается при некорректной роли участника
	ErrInvalidRole = errors.New("invalid party role")
)

// dateTimeFormat локальное время без часового пояса
const dateTimeFormat = domain.DateFormat + "T" + domain.TimeFormat

// Request модели

// GetPartyBookingsRequest запрос на получение бронирований участника
type GetPartyBookingsRequest struct {
	ActorID int64   `json:"-"`
	PartyID int64   `json:"-"`
	Role    string  `json:"role"`             // requester (по умолчанию) | provider
	Status  *string `json:"status,omitempty"` // фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPartyBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{PartyID: r.PartyID}

	switch domain.Role(r.Role) {
	case "", domain.RoleRequester:
		filter.Role = domain.RoleRequester
	case domain.RoleProvider:
		filter.Role = domain.RoleProvider
	default:
		return filter, ErrInvalidRole
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	RequesterID     int64   `json:"requesterId"`
	ProviderID      int64   `json:"providerId"`
	Start           string  `json:"start"` // "2025-06-02T09:00"
	End             string  `json:"end"`
	Date            string  `json:"date"`      // "2025-06-02"
	SlotLabel       string  `json:"slotLabel"` // "09:00"
	DurationMinutes int     `json:"durationMinutes"`
	Mode            string  `json:"mode"`
	Reason          *string `json:"reason,omitempty"`
	Status          string  `json:"status"`
	ProviderNote    *string `json:"providerNote,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		RequesterID:     b.RequesterID,
		ProviderID:      b.ProviderID,
		Start:           b.Start.Format(dateTimeFormat),
		End:             b.End.Format(dateTimeFormat),
		Date:            b.CalendarDate.Format(domain.DateFormat),
		SlotLabel:       b.SlotLabel.String(),
		DurationMinutes: b.DurationMinutes,
		Mode:            string(b.Mode),
		Reason:          b.Reason,
		Status:          string(b.Status),
		ProviderNote:    b.ProviderNote,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, ok := domain.ParseBookingStatus(s)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}
