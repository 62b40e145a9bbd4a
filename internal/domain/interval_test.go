package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	base := Interval{Start: at(9, 0), End: at(10, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"same", Interval{at(9, 0), at(10, 0)}, true},
		{"starts inside", Interval{at(9, 30), at(10, 30)}, true},
		{"ends inside", Interval{at(8, 30), at(9, 30)}, true},
		{"contains", Interval{at(8, 0), at(11, 0)}, true},
		{"touches end", Interval{at(10, 0), at(11, 0)}, false},
		{"touches start", Interval{at(8, 0), at(9, 0)}, false},
		{"disjoint", Interval{at(12, 0), at(13, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestNewSlotInterval(t *testing.T) {
	date := time.Date(2025, 6, 2, 17, 45, 0, 0, time.UTC)

	interval, err := NewSlotInterval(date, "09:00", DefaultDurationMinutes)
	require.NoError(t, err)
	assert.Equal(t, at(9, 0), interval.Start)
	assert.Equal(t, at(10, 0), interval.End)

	_, err = NewSlotInterval(date, "9am", DefaultDurationMinutes)
	assert.Error(t, err)

	_, err = NewSlotInterval(date, "09:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("02.06.2025")
	assert.Error(t, err)
}
