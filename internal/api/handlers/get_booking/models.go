package get_booking

import (
	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/bookings/models"
)

// SessionResponse HTTP response model: сессия и роль участника, который её запросил
type SessionResponse struct {
	*models.BookingResponse
	ViewerRole string `json:"viewerRole"` // requester | provider
}

func newSessionResponse(booking *models.BookingResponse, viewerID int64) *SessionResponse {
	role := domain.RoleRequester
	if booking.ProviderID == viewerID {
		role = domain.RoleProvider
	}
	return &SessionResponse{BookingResponse: booking, ViewerRole: string(role)}
}
