package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/pkg/types"
)

func TestNormalizeTemplate(t *testing.T) {
	input := WeeklyTemplate{
		{Weekday: 1, Slots: []types.TimeString{"9:00", "10:00", "09:00"}},
		{Weekday: 3, Slots: []types.TimeString{"14:00"}},
		{Weekday: 1, Slots: []types.TimeString{"11:00", "10:00"}},
	}

	got, err := NormalizeTemplate(input)
	require.NoError(t, err)

	assert.Equal(t, WeeklyTemplate{
		{Weekday: 1, Slots: []types.TimeString{"09:00", "10:00", "11:00"}},
		{Weekday: 3, Slots: []types.TimeString{"14:00"}},
	}, got)
}

func TestNormalizeTemplate_Errors(t *testing.T) {
	_, err := NormalizeTemplate(WeeklyTemplate{{Weekday: 7, Slots: []types.TimeString{"09:00"}}})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = NormalizeTemplate(WeeklyTemplate{{Weekday: -1}})
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = NormalizeTemplate(WeeklyTemplate{{Weekday: 2, Slots: []types.TimeString{""}}})
	assert.ErrorIs(t, err, ErrInvalidSlotLabel)

	_, err = NormalizeTemplate(WeeklyTemplate{{Weekday: 2, Slots: []types.TimeString{"25:00"}}})
	assert.ErrorIs(t, err, ErrInvalidSlotLabel)
}

func TestNormalizeTemplate_Empty(t *testing.T) {
	got, err := NormalizeTemplate(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWeeklyTemplate_SlotsFor(t *testing.T) {
	tpl := WeeklyTemplate{{Weekday: 1, Slots: []types.TimeString{"09:00", "10:00"}}}

	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, tpl.SlotsFor(time.Monday))
	assert.Nil(t, tpl.SlotsFor(time.Tuesday))
}
