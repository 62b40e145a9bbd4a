package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/scheduling"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// UseCase use case для получения свободных слотов провайдера на дату
type UseCase struct {
	providers ProviderFinder
	detector  ConflictDetector
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(providers ProviderFinder, detector ConflictDetector, logger Logger) *UseCase {
	return &UseCase{
		providers: providers,
		detector:  detector,
		logger:    logger,
	}
}

// Execute возвращает метки шаблона на дату, не пересекающиеся с бронированиями.
// Чтение не блокирует запись: результат может устареть к моменту бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s", req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		Date:       domain.DateOnly(req.Date),
		ProviderID: req.ProviderID,
		Slots:      []types.TimeString{},
	}

	// 2. Получаем провайдера
	provider, err := uc.providers.FindProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providers.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsProvider() {
		uc.logger.Warn("GetAvailableSlots: user id=%d is not a provider", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	// 3. Прием записей выключен - журнал не читаем
	if !provider.AcceptingBookings {
		uc.logger.Info("GetAvailableSlots: provider id=%d is not accepting bookings", req.ProviderID)
		return response, nil
	}

	// 4. Кандидаты из шаблона
	candidates := scheduling.DeriveCandidates(provider, req.Date)
	if len(candidates) == 0 {
		return response, nil
	}

	// 5. Отсекаем занятые
	free, err := uc.detector.FreeSlots(ctx, req.ProviderID, req.Date, candidates, domain.DefaultDurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check conflicts for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
	}

	response.Slots = free
	uc.logger.Info("GetAvailableSlots: %d/%d slots free for provider=%d", len(free), len(candidates), req.ProviderID)

	return response, nil
}
