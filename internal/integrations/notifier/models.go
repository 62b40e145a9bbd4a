package notifier

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
)

// EventType тип события бронирования
type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventBookingRescheduled   EventType = "booking.rescheduled"
)

// Event уведомление о бронировании
type Event struct {
	ID          string               `json:"id"`
	Type        EventType            `json:"type"`
	BookingID   int64                `json:"bookingId"`
	ProviderID  int64                `json:"providerId"`
	RequesterID int64                `json:"requesterId"`
	Status      domain.BookingStatus `json:"status"`
	Start       string               `json:"start"`
	End         string               `json:"end"`
	OccurredAt  time.Time            `json:"occurredAt"`
}

// NewEvent собирает событие по состоянию бронирования
func NewEvent(eventType EventType, booking *domain.Booking, occurredAt time.Time) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		BookingID:   booking.ID,
		ProviderID:  booking.ProviderID,
		RequesterID: booking.RequesterID,
		Status:      booking.Status,
		Start:       booking.Start.Format(domain.DateFormat + "T" + domain.TimeFormat),
		End:         booking.End.Format(domain.DateFormat + "T" + domain.TimeFormat),
		OccurredAt:  occurredAt,
	}
}
