package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	"github.com/m04kA/SMC-TherapyBooking/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event Event) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type countingMetrics struct {
	mu      sync.Mutex
	results map[string]int
}

func (m *countingMetrics) ObserveNotification(event, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[event+":"+result]++
}

func testBooking() *domain.Booking {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:          11,
		RequesterID: 1,
		ProviderID:  2,
		Start:       start,
		End:         start.Add(time.Hour),
		Status:      domain.StatusPending,
	}
}

func TestDispatcher_DeliversToAllPublishers(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("redis down")}
	metrics := &countingMetrics{results: map[string]int{}}

	d := NewDispatcher(time.Second, metrics, logger.NewNop(), ok, failing)

	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, NewEvent(EventBookingCreated, testBooking(), time.Now()))
	cancel()
	d.Wait()

	require.Len(t, ok.events, 1)
	require.Len(t, failing.events, 1)
	assert.Equal(t, EventBookingCreated, ok.events[0].Type)
	assert.Equal(t, "2025-06-02T09:00", ok.events[0].Start)
	assert.Equal(t, "2025-06-02T10:00", ok.events[0].End)
	assert.NotEmpty(t, ok.events[0].ID)

	assert.Equal(t, 1, metrics.results["booking.created:success"])
	assert.Equal(t, 1, metrics.results["booking.created:error"])
}

func TestDispatcher_NilMetrics(t *testing.T) {
	p := &recordingPublisher{}
	d := NewDispatcher(time.Second, nil, logger.NewNop(), p, NewLogPublisher(logger.NewNop()))

	d.Notify(context.Background(), NewEvent(EventBookingRescheduled, testBooking(), time.Now()))
	d.Wait()

	assert.Len(t, p.events, 1)
}
