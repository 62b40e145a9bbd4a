package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/infra/lock"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-TherapyBooking/internal/scheduling"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
)

const operation = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	providers    ProviderFinder
	detector     ConflictDetector
	locker       Locker
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	providers ProviderFinder,
	detector ConflictDetector,
	locker Locker,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		providers:    providers,
		detector:     detector,
		locker:       locker,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование в статусе pending.
// Порядок проверок: провайдер существует, принимает записи, метка есть в шаблоне, нет пересечений.
// Проверка пересечений и вставка выполняются под блокировкой провайдера в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	uc.observe(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: requester=%d, provider=%d, date=%s, slot=%s, mode=%s",
		req.RequesterID, req.ProviderID, req.Date.Format(domain.DateFormat), req.SlotLabel, req.Mode)

	// 1. Валидация входных данных
	mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем провайдера
	provider, err := uc.providers.FindProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providers.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsProvider() {
		uc.logger.Warn("CreateBooking: user id=%d is not a provider", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	// 3. Глобальный флаг приема записей
	if !provider.AcceptingBookings {
		uc.logger.Warn("CreateBooking: provider id=%d is not accepting bookings", req.ProviderID)
		return nil, ErrNotAvailable
	}

	// 4. Метка должна быть в шаблоне на этот день недели
	if !scheduling.IsOffered(provider, req.Date, req.SlotLabel) {
		uc.logger.Warn("CreateBooking: slot %s is not offered by provider id=%d on %s",
			req.SlotLabel, req.ProviderID, req.Date.Weekday())
		return nil, ErrSlotNotOffered
	}

	interval, err := domain.NewSlotInterval(req.Date, req.SlotLabel, req.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking := &domain.Booking{
		RequesterID:     req.RequesterID,
		ProviderID:      req.ProviderID,
		Start:           interval.Start,
		End:             interval.End,
		CalendarDate:    domain.DateOnly(req.Date),
		SlotLabel:       req.SlotLabel,
		DurationMinutes: req.DurationMinutes,
		Mode:            mode,
		Reason:          req.Reason,
		Status:          domain.StatusPending,
	}

	// 5. Проверка пересечений и вставка под блокировкой провайдера
	err = uc.locker.WithProviderLock(ctx, req.ProviderID, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			conflict, err := uc.detector.HasConflict(txCtx, req.ProviderID, interval, nil)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to check conflicts: %v", err)
				return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
			}
			if conflict {
				uc.logger.Warn("CreateBooking: slot %s on %s conflicts for provider id=%d",
					req.SlotLabel, req.Date.Format(domain.DateFormat), req.ProviderID)
				return ErrSlotConflict
			}

			if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
				uc.logger.Error("CreateBooking: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			uc.logger.Warn("CreateBooking: provider id=%d lock not acquired: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: %v", ErrBusy, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", booking.ID)

	uc.notifier.Notify(ctx, notifier.NewEvent(notifier.EventBookingCreated, booking, uc.timeProvider.Now()))

	return toResponse(booking), nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotConflict):
		result = "conflict"
	case errors.Is(err, ErrBusy):
		result = "busy"
	case errors.Is(err, ErrInternal):
		result = "error"
	default:
		result = "rejected"
	}
	uc.metrics.ObserveBooking(operation, result)
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		RequesterID:     b.RequesterID,
		ProviderID:      b.ProviderID,
		Start:           b.Start,
		End:             b.End,
		CalendarDate:    b.CalendarDate,
		SlotLabel:       b.SlotLabel,
		DurationMinutes: b.DurationMinutes,
		Mode:            string(b.Mode),
		Reason:          b.Reason,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
