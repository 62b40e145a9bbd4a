package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) (domain.Mode, error) {
	if req.RequesterID <= 0 {
		return "", fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return "", fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.RequesterID == req.ProviderID {
		return "", fmt.Errorf("%w: cannot book a session with yourself", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotLabel.IsZero() {
		return "", fmt.Errorf("%w: slot label is required", ErrInvalidInput)
	}

	label, err := types.NewTimeStringFromString(req.SlotLabel.String())
	if err != nil {
		return "", fmt.Errorf("%w: invalid slot label: %v", ErrInvalidInput, err)
	}
	req.SlotLabel = label

	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultDurationMinutes
	}
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return "", fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return mode, nil
}
