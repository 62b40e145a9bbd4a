package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

// ErrInvalidInterval возвращается, когда конец интервала не позже начала
var ErrInvalidInterval = errors.New("domain: interval end must be after start")

// Interval полуоткрытый интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewSlotInterval строит интервал слота: дата + время начала, длительность в минутах
func NewSlotInterval(date time.Time, label types.TimeString, durationMinutes int) (Interval, error) {
	start, err := label.On(DateOnly(date))
	if err != nil {
		return Interval{}, err
	}

	interval := Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
	if !interval.End.After(interval.Start) {
		return Interval{}, fmt.Errorf("%w: %s + %d min", ErrInvalidInterval, label, durationMinutes)
	}

	return interval, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Интервалы, касающиеся границами, не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return other.Start.Before(i.End) && other.End.After(i.Start)
}

// DateOnly отбрасывает время, сохраняя локацию (без преобразования пояса)
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate парсит дату YYYY-MM-DD как "наивную" (UTC используется только как носитель)
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
