package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/availability"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/directory"
)

// Service собирает провайдера из справочника пользователей и хранилища расписаний
type Service struct {
	directory        DirectoryClient
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса провайдеров
func NewService(directory DirectoryClient, availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		directory:        directory,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// FindProvider возвращает участника с его расписанием.
// Если расписание еще не сохранено, шаблон пустой и прием записей выключен.
// Роль не проверяется: это делает вызывающая сторона.
func (s *Service) FindProvider(ctx context.Context, providerID int64) (*domain.Provider, error) {
	user, err := s.directory.FindUser(ctx, providerID)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			s.logger.Warn("FindProvider: user id=%d not found in directory", providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("FindProvider: directory error for user id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: FindProvider - directory error: %v", ErrInternal, err)
	}

	provider := &domain.Provider{
		ID:             providerID,
		Role:           domain.Role(user.Role),
		WeeklyTemplate: domain.WeeklyTemplate{},
	}

	availability, err := s.availabilityRepo.Get(ctx, providerID)
	switch {
	case errors.Is(err, availabilityRepo.ErrAvailabilityNotFound):
		return provider, nil
	case err != nil:
		s.logger.Error("FindProvider: availability error for provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: FindProvider - availability error: %w", ErrInternal, err)
	}

	provider.AcceptingBookings = availability.AcceptingBookings
	provider.WeeklyTemplate = availability.Template

	return provider, nil
}
