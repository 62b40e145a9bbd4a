package providers

import "errors"

var (
	// ErrProviderNotFound возвращается, когда участник отсутствует в справочнике
	ErrProviderNotFound = errors.New("provider not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("providers: internal error")
)
