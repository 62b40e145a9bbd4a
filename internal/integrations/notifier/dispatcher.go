package notifier

import (
	"context"
	"sync"
	"time"
)

// Dispatcher асинхронно рассылает события всем издателям.
// Ошибки доставки только логируются и никогда не влияют на бронирование.
type Dispatcher struct {
	publishers []Publisher
	timeout    time.Duration
	metrics    Metrics
	log        Logger
	wg         sync.WaitGroup
}

// NewDispatcher создает диспетчер. metrics может быть nil.
func NewDispatcher(timeout time.Duration, metrics Metrics, log Logger, publishers ...Publisher) *Dispatcher {
	return &Dispatcher{
		publishers: publishers,
		timeout:    timeout,
		metrics:    metrics,
		log:        log,
	}
}

// Notify отправляет событие в фоне, не дожидаясь доставки
func (d *Dispatcher) Notify(ctx context.Context, event Event) {
	// отмена запроса не должна прерывать доставку
	ctx = context.WithoutCancel(ctx)

	for _, publisher := range d.publishers {
		d.wg.Add(1)
		go func(p Publisher) {
			defer d.wg.Done()

			publishCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			if err := p.Publish(publishCtx, event); err != nil {
				d.log.Error("Notify: failed to deliver %s for booking=%d: %v", event.Type, event.BookingID, err)
				d.observe(event.Type, "error")
				return
			}
			d.observe(event.Type, "success")
		}(publisher)
	}
}

// Wait дожидается завершения отправленных уведомлений (graceful shutdown)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) observe(event EventType, result string) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(string(event), result)
	}
}
