package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-TherapyBooking/internal/scheduling"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

const (
	operationStatus     = "update_status"
	operationReschedule = "reschedule"
)

// UseCase use case для смены статуса бронирования провайдером
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

// Execute меняет статус бронирования.
// Для reschedule_requested новый интервал проверяется по текущему шаблону и на пересечения
// (само бронирование исключается), длительность сохраняется. При любой ошибке бронирование не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)

	op := operationStatus
	if req.Status == string(domain.StatusRescheduleRequested) {
		op = operationReschedule
	}
	uc.observe(op, err)

	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, status=%s, actor=%d", req.BookingID, req.Status, req.ActorID)

	// 1. Валидация входных данных
	newStatus, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование и права
	current, err := uc.getBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAccessAndTransition(current, req.ActorID, newStatus); err != nil {
		return nil, err
	}

	// 3. Для переноса: метка из текущего шаблона провайдера
	var interval domain.Interval
	if newStatus == domain.StatusRescheduleRequested {
		interval, err = uc.validateNewSlot(ctx, current, *req.NewDate, *req.NewSlotLabel)
		if err != nil {
			return nil, err
		}
	}

	// 4. Запись под блокировкой провайдера в сериализуемой транзакции
	var updated *domain.Booking
	err = uc.locker.WithProviderLock(ctx, current.ProviderID, func(lockCtx context.Context) error {
		return uc.txManager.DoSerializable(lockCtx, func(txCtx context.Context) error {
			// перечитываем: статус мог измениться до получения блокировки
			booking, err := uc.getBooking(txCtx, req.BookingID)
			if err != nil {
				return err
			}
			if err := uc.checkAccessAndTransition(booking, req.ActorID, newStatus); err != nil {
				return err
			}

			if newStatus == domain.StatusRescheduleRequested {
				conflict, err := uc.detector.HasConflict(txCtx, booking.ProviderID, interval, &booking.ID)
				if err != nil {
					uc.logger.Error("UpdateBookingStatus: failed to check conflicts: %v", err)
					return fmt.Errorf("%w: failed to check conflicts: %w", ErrInternal, err)
				}
				if conflict {
					uc.logger.Warn("UpdateBookingStatus: new slot %s on %s conflicts for provider id=%d",
						req.NewSlotLabel, req.NewDate.Format(domain.DateFormat), booking.ProviderID)
					return ErrSlotConflict
				}
				booking.Reschedule(*req.NewDate, *req.NewSlotLabel, interval)
			}

			booking.Status = newStatus
			booking.MergeNote(req.ProviderNote)

			if err := uc.bookingRepo.Update(txCtx, booking); err != nil {
				if errors.Is(err, bookingRepo.ErrBookingNotFound) {
					return ErrBookingNotFound
				}
				uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
			}

			updated = booking
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			uc.logger.Warn("UpdateBookingStatus: provider id=%d lock not acquired: %v", current.ProviderID, err)
			return nil, fmt.Errorf("%w: %v", ErrBusy, err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%d moved %s -> %s", updated.ID, current.Status, updated.Status)

	eventType := notifier.EventBookingStatusChanged
	if newStatus == domain.StatusRescheduleRequested {
		eventType = notifier.EventBookingRescheduled
	}
	uc.notifier.Notify(ctx, notifier.NewEvent(eventType, updated, uc.timeProvider.Now()))

	return toResponse(updated), nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) checkAccessAndTransition(booking *domain.Booking, actorID int64, newStatus domain.BookingStatus) error {
	if booking.ProviderID != actorID {
		uc.logger.Warn("UpdateBookingStatus: actor=%d is not the provider of booking id=%d", actorID, booking.ID)
		return ErrRoleMismatch
	}
	if booking.Status.IsTerminal() {
		uc.logger.Warn("UpdateBookingStatus: booking id=%d is already %s and cannot be changed", booking.ID, booking.Status)
		return fmt.Errorf("%w: booking is %s", ErrInvalidTransition, booking.Status)
	}
	if !booking.Status.CanTransitionTo(newStatus) {
		uc.logger.Warn("UpdateBookingStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, booking.ID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}
	return nil
}

func (uc *UseCase) validateNewSlot(ctx context.Context, booking *domain.Booking, date time.Time, label types.TimeString) (domain.Interval, error) {
	provider, err := uc.providers.FindProvider(ctx, booking.ProviderID)
	if err != nil {
		if errors.Is(err, providers.ErrProviderNotFound) {
			uc.logger.Warn("UpdateBookingStatus: provider id=%d no longer exists", booking.ProviderID)
			return domain.Interval{}, ErrSlotNotOffered
		}
		uc.logger.Error("UpdateBookingStatus: failed to get provider id=%d: %v", booking.ProviderID, err)
		return domain.Interval{}, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !scheduling.InTemplate(provider, date, label) {
		uc.logger.Warn("UpdateBookingStatus: slot %s is not in template of provider id=%d on %s",
			label, booking.ProviderID, date.Weekday())
		return domain.Interval{}, ErrSlotNotOffered
	}

	interval, err := domain.NewSlotInterval(date, label, booking.DurationMinutes)
	if err != nil {
		return domain.Interval{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return interval, nil
}

func (uc *UseCase) observe(op string, err error) {
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
	uc.metrics.ObserveBooking(op, result)
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
		ProviderNote:    b.ProviderNote,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
