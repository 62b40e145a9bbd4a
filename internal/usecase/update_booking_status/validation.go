package update_booking_status

import (
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// validateRequest валидирует входные данные и возвращает целевой статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.ActorID <= 0 {
		return "", fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	status, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.ProviderNote != nil && len(*req.ProviderNote) > domain.MaxNoteLength {
		return "", fmt.Errorf("%w: note is longer than %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if status != domain.StatusRescheduleRequested {
		return status, nil
	}

	if req.NewDate == nil || req.NewDate.IsZero() || req.NewSlotLabel == nil || req.NewSlotLabel.IsZero() {
		return "", fmt.Errorf("%w: newDate and newSlotLabel are required for reschedule", ErrInvalidInput)
	}

	label, err := types.NewTimeStringFromString(req.NewSlotLabel.String())
	if err != nil {
		return "", fmt.Errorf("%w: invalid newSlotLabel: %v", ErrInvalidInput, err)
	}
	req.NewSlotLabel = &label

	return status, nil
}
