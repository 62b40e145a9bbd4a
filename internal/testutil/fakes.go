// Package testutil содержит in-memory реализации зависимостей для тестов usecase и handlers.
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-TherapyBooking/internal/service/providers"
)

// Ledger потокобезопасный журнал бронирований в памяти
type Ledger struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking

	// OccupyingCalls количество чтений занятых интервалов
	OccupyingCalls int
	// FailWith если задан, все операции возвращают эту ошибку
	FailWith error
}

func NewLedger() *Ledger {
	return &Ledger{bookings: make(map[int64]*domain.Booking)}
}

func (l *Ledger) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailWith != nil {
		return nil, l.FailWith
	}

	l.nextID++
	booking.ID = l.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	stored := *booking
	l.bookings[booking.ID] = &stored
	return booking, nil
}

func (l *Ledger) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailWith != nil {
		return nil, l.FailWith
	}

	b, ok := l.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (l *Ledger) ListByParty(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailWith != nil {
		return nil, l.FailWith
	}

	result := make([]*domain.Booking, 0)
	for _, b := range l.bookings {
		party := b.RequesterID
		if filter.Role == domain.RoleProvider {
			party = b.ProviderID
		}
		if party != filter.PartyID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID > result[j].ID
		}
		return result[i].Start.After(result[j].Start)
	})
	return result, nil
}

func (l *Ledger) ListOccupying(_ context.Context, providerID int64, interval domain.Interval, excludeID *int64) ([]*domain.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.OccupyingCalls++
	if l.FailWith != nil {
		return nil, l.FailWith
	}

	result := make([]*domain.Booking, 0)
	for _, b := range l.bookings {
		if b.ProviderID != providerID || !b.OccupiesSlot() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Interval().Overlaps(interval) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (l *Ledger) Update(_ context.Context, booking *domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.FailWith != nil {
		return l.FailWith
	}

	if _, ok := l.bookings[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	booking.UpdatedAt = time.Now()
	stored := *booking
	l.bookings[booking.ID] = &stored
	return nil
}

// Put сохраняет бронирование как есть (для подготовки данных)
func (l *Ledger) Put(booking *domain.Booking) *domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	if booking.ID == 0 {
		l.nextID++
		booking.ID = l.nextID
	} else if booking.ID > l.nextID {
		l.nextID = booking.ID
	}
	stored := *booking
	l.bookings[booking.ID] = &stored
	return booking
}

// All возвращает копию всех бронирований
func (l *Ledger) All() []*domain.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]*domain.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		copied := *b
		result = append(result, &copied)
	}
	return result
}

// Providers справочник провайдеров в памяти
type Providers struct {
	mu    sync.Mutex
	items map[int64]*domain.Provider
	Err   error
}

func NewProviders(items ...*domain.Provider) *Providers {
	p := &Providers{items: make(map[int64]*domain.Provider)}
	for _, item := range items {
		p.items[item.ID] = item
	}
	return p
}

func (p *Providers) FindProvider(_ context.Context, providerID int64) (*domain.Provider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return nil, p.Err
	}
	item, ok := p.items[providerID]
	if !ok {
		return nil, providers.ErrProviderNotFound
	}
	copied := *item
	return &copied, nil
}

// Set заменяет провайдера
func (p *Providers) Set(item *domain.Provider) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[item.ID] = item
}

// TxManager выполняет функцию без транзакции
type TxManager struct {
	Calls int
	mu    sync.Mutex
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	return fn(ctx)
}

// Notifier запоминает отправленные события
type Notifier struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (n *Notifier) Notify(_ context.Context, event notifier.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *Notifier) Events() []notifier.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Event(nil), n.events...)
}

// BusyLocker всегда отказывает в блокировке
type BusyLocker struct {
	Err error
}

func (b BusyLocker) WithProviderLock(_ context.Context, _ int64, _ func(ctx context.Context) error) error {
	if b.Err == nil {
		return errors.New("busy")
	}
	return b.Err
}

// FixedClock фиксированное время
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}
