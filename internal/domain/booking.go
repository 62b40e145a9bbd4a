package domain

import (
	"time"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusApproved            BookingStatus = "approved"
	StatusRejected            BookingStatus = "rejected"
	StatusRescheduleRequested BookingStatus = "reschedule_requested"
	StatusCompleted           BookingStatus = "completed"
)

// transitions допустимые переходы между статусами.
// rejected и completed финальные.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:             {StatusApproved, StatusRejected, StatusRescheduleRequested, StatusCompleted},
	StatusRescheduleRequested: {StatusApproved, StatusRejected, StatusRescheduleRequested, StatusCompleted},
	StatusApproved:            {StatusRejected, StatusRescheduleRequested, StatusCompleted},
}

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusRescheduleRequested, StatusCompleted:
		return status, true
	}
	return "", false
}

// CanTransitionTo reports whether the state machine allows moving to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Mode способ проведения сессии
type Mode string

const (
	ModeVideo    Mode = "video"
	ModeChat     Mode = "chat"
	ModeInPerson Mode = "in_person"
)

// ParseMode converts a raw string into a known mode
func ParseMode(s string) (Mode, bool) {
	mode := Mode(s)
	switch mode {
	case ModeVideo, ModeChat, ModeInPerson:
		return mode, true
	}
	return "", false
}

// Booking represents a session booked by a requester with a provider
type Booking struct {
	ID          int64
	RequesterID int64
	ProviderID  int64

	// Start/End - локальное "наивное" время без преобразования часовых поясов
	Start           time.Time
	End             time.Time
	CalendarDate    time.Time
	SlotLabel       types.TimeString
	DurationMinutes int

	Mode         Mode
	Reason       *string
	Status       BookingStatus
	ProviderNote *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the booked [Start, End) interval
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// OccupiesSlot returns true if the booking still blocks its interval.
// Only rejected bookings vacate their slot.
func (b *Booking) OccupiesSlot() bool {
	return b.Status != StatusRejected
}

// Reschedule moves the booking to a new interval keeping its duration
func (b *Booking) Reschedule(date time.Time, label types.TimeString, interval Interval) {
	b.Start = interval.Start
	b.End = interval.End
	b.CalendarDate = DateOnly(date)
	b.SlotLabel = label
}

// MergeNote overwrites the provider note only when a new one is supplied
func (b *Booking) MergeNote(note *string) {
	if note != nil && *note != "" {
		b.ProviderNote = note
	}
}

// BookingsFilter фильтр выборки бронирований участника
type BookingsFilter struct {
	PartyID int64
	Role    PartyRole
	Status  *BookingStatus // опционально
}
