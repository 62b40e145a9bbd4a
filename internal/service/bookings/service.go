package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут только его участники.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.RequesterID != userID && booking.ProviderID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetPartyBookings возвращает бронирования участника, сначала самые поздние.
// Участник может запрашивать только свои бронирования.
func (s *Service) GetPartyBookings(ctx context.Context, req *models.GetPartyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPartyBookings: party=%d, role=%s, status=%v, actor=%d", req.PartyID, req.Role, req.Status, req.ActorID)

	if req.PartyID <= 0 {
		return nil, fmt.Errorf("%w: party id must be positive", ErrInvalidInput)
	}
	if req.ActorID != req.PartyID {
		s.logger.Warn("GetPartyBookings: access denied for actor=%d to party=%d", req.ActorID, req.PartyID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPartyBookings: invalid filter for party=%d: %v", req.PartyID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListByParty(ctx, filter)
	if err != nil {
		s.logger.Error("GetPartyBookings: repository error for party=%d: %v", req.PartyID, err)
		return nil, fmt.Errorf("%w: GetPartyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPartyBookings: fetched %d bookings for party=%d", len(bookings), req.PartyID)
	return models.FromDomainBookingList(bookings), nil
}
