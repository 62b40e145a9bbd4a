package notifier

import "context"

// Publisher доставляет событие во внешний канал
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Metrics счетчик результатов доставки
type Metrics interface {
	ObserveNotification(event, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
