package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrRoleMismatch возвращается, когда статус меняет не провайдер бронирования
	ErrRoleMismatch = errors.New("update_booking_status: only the booking's provider can change its status")

	// ErrInvalidTransition возвращается для перехода, запрещенного машиной состояний
	ErrInvalidTransition = errors.New("update_booking_status: invalid status transition")

	// ErrSlotNotOffered возвращается, когда новой метки нет в текущем шаблоне
	ErrSlotNotOffered = errors.New("update_booking_status: new slot is not offered on this date")

	// ErrSlotConflict возвращается, когда новый интервал пересекается с другим бронированием
	ErrSlotConflict = errors.New("update_booking_status: new slot conflicts with an existing booking")

	// ErrBusy возвращается, когда не удалось получить блокировку провайдера
	ErrBusy = errors.New("update_booking_status: provider is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
