package scheduling

import "errors"

var (
	// ErrLedger возвращается при ошибке чтения бронирований
	ErrLedger = errors.New("scheduling: failed to read bookings")
)
