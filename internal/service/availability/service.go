package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/availability/models"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
)

// Service администрирование расписания провайдера
type Service struct {
	providers        ProviderFinder
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(providers ProviderFinder, availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		providers:        providers,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// ReplaceTemplate заменяет недельный шаблон целиком и включает прием записей.
// Существующие бронирования не пересматриваются.
func (s *Service) ReplaceTemplate(ctx context.Context, req *models.ReplaceTemplateRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("ReplaceTemplate: provider=%d by actor=%d, days=%d", req.ProviderID, req.ActorID, len(req.WeeklyTemplate))

	if err := s.checkProviderAccess(ctx, "ReplaceTemplate", req.ActorID, req.ProviderID); err != nil {
		return nil, err
	}

	template, err := domain.NormalizeTemplate(req.ToDomainTemplate())
	if err != nil {
		s.logger.Warn("ReplaceTemplate: invalid template for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	availability, err := s.availabilityRepo.Set(ctx, req.ProviderID, template)
	if err != nil {
		s.logger.Error("ReplaceTemplate: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ReplaceTemplate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceTemplate: template saved for provider=%d", req.ProviderID)
	return models.FromDomainAvailability(availability), nil
}

// SetAcceptingBookings переключает глобальный флаг приема записей, шаблон не меняется
func (s *Service) SetAcceptingBookings(ctx context.Context, req *models.SetAcceptingRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetAcceptingBookings: provider=%d by actor=%d, accepting=%t", req.ProviderID, req.ActorID, req.AcceptingBookings)

	if err := s.checkProviderAccess(ctx, "SetAcceptingBookings", req.ActorID, req.ProviderID); err != nil {
		return nil, err
	}

	availability, err := s.availabilityRepo.SetAcceptingBookings(ctx, req.ProviderID, req.AcceptingBookings)
	if err != nil {
		s.logger.Error("SetAcceptingBookings: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: SetAcceptingBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(availability), nil
}

// GetTemplate возвращает расписание провайдера (публичное чтение)
func (s *Service) GetTemplate(ctx context.Context, providerID int64) (*models.AvailabilityResponse, error) {
	provider, err := s.findProvider(ctx, "GetTemplate", providerID)
	if err != nil {
		return nil, err
	}
	if !provider.IsProvider() {
		s.logger.Warn("GetTemplate: user id=%d is not a provider", providerID)
		return nil, ErrProviderNotFound
	}

	return models.FromDomainProvider(provider), nil
}

// checkProviderAccess проверяет, что провайдер существует, имеет роль provider и действует сам
func (s *Service) checkProviderAccess(ctx context.Context, op string, actorID, providerID int64) error {
	if actorID <= 0 || providerID <= 0 {
		return fmt.Errorf("%w: actor and provider IDs must be positive", ErrInvalidInput)
	}

	provider, err := s.findProvider(ctx, op, providerID)
	if err != nil {
		return err
	}

	if !provider.IsProvider() || actorID != providerID {
		s.logger.Warn("%s: actor=%d is not allowed to manage provider=%d (role=%s)", op, actorID, providerID, provider.Role)
		return ErrRoleMismatch
	}

	return nil
}

func (s *Service) findProvider(ctx context.Context, op string, providerID int64) (*domain.Provider, error) {
	provider, err := s.providers.FindProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, providers.ErrProviderNotFound) {
			s.logger.Warn("%s: provider id=%d not found", op, providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("%s: failed to find provider id=%d: %v", op, providerID, err)
		return nil, fmt.Errorf("%w: %s - provider lookup: %v", ErrInternal, op, err)
	}
	return provider, nil
}
