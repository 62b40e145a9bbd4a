package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается для дня недели вне диапазона 0..6
	ErrInvalidWeekday = errors.New("domain: weekday must be in [0,6]")

	// ErrInvalidSlotLabel возвращается для пустой или некорректной метки слота
	ErrInvalidSlotLabel = errors.New("domain: invalid slot label")
)

// DayTemplate слоты одного дня недели (0 = воскресенье ... 6 = суббота)
type DayTemplate struct {
	Weekday int                `json:"day"`
	Slots   []types.TimeString `json:"slots"`
}

// WeeklyTemplate повторяющееся недельное расписание провайдера
type WeeklyTemplate []DayTemplate

// SlotsFor возвращает метки слотов для дня недели в сохраненном порядке
func (t WeeklyTemplate) SlotsFor(weekday time.Weekday) []types.TimeString {
	for _, day := range t {
		if day.Weekday == int(weekday) {
			return day.Slots
		}
	}
	return nil
}

// NormalizeTemplate проверяет шаблон и приводит его к каноническому виду:
// метки нормализуются к HH:MM, дубликаты внутри дня удаляются (порядок сохраняется),
// повторные записи одного дня объединяются.
func NormalizeTemplate(template WeeklyTemplate) (WeeklyTemplate, error) {
	result := make(WeeklyTemplate, 0, len(template))
	index := make(map[int]int, len(template))
	seen := make(map[int]map[types.TimeString]struct{}, len(template))

	for _, day := range template {
		if day.Weekday < MinWeekday || day.Weekday > MaxWeekday {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidWeekday, day.Weekday)
		}

		pos, ok := index[day.Weekday]
		if !ok {
			pos = len(result)
			index[day.Weekday] = pos
			seen[day.Weekday] = make(map[types.TimeString]struct{})
			result = append(result, DayTemplate{Weekday: day.Weekday, Slots: []types.TimeString{}})
		}

		for _, raw := range day.Slots {
			label, err := types.NewTimeStringFromString(string(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidSlotLabel, day.Weekday, err)
			}
			if _, dup := seen[day.Weekday][label]; dup {
				continue
			}
			seen[day.Weekday][label] = struct{}{}
			result[pos].Slots = append(result[pos].Slots, label)
		}
	}

	return result, nil
}

// Availability запись хранилища шаблонов
type Availability struct {
	ProviderID        int64
	AcceptingBookings bool
	Template          WeeklyTemplate
	UpdatedAt         time.Time
}

// Provider участник, предлагающий время для записи
type Provider struct {
	ID                int64
	Role              Role
	AcceptingBookings bool
	WeeklyTemplate    WeeklyTemplate
}

// IsProvider returns true if the party has the provider role
func (p *Provider) IsProvider() bool {
	return p.Role == RoleProvider
}
