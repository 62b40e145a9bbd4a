package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrNotAvailable возвращается, когда провайдер не принимает записи
	ErrNotAvailable = errors.New("create_booking: provider is not accepting bookings")

	// ErrSlotNotOffered возвращается, когда метки нет в шаблоне на этот день недели
	ErrSlotNotOffered = errors.New("create_booking: slot is not offered on this date")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrBusy возвращается, когда не удалось получить блокировку провайдера
	ErrBusy = errors.New("create_booking: provider is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
