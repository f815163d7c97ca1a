package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day.Weekday())

	_, err = ParseDate("07/09/2026")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseMinuteOfDay(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"08:00": 480,
		"09:30": 570,
		"23:59": 1439,
	}
	for clock, want := range cases {
		got, err := ParseMinuteOfDay(clock)
		require.NoError(t, err, clock)
		assert.Equal(t, want, got, clock)
	}

	for _, clock := range []string{"24:00", "12:60", "noon", ""} {
		_, err := ParseMinuteOfDay(clock)
		assert.Error(t, err, clock)
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	assert.Equal(t, "08:00", FormatMinuteOfDay(480))
	assert.Equal(t, "09:30", FormatMinuteOfDay(570))
	assert.Equal(t, "00:05", FormatMinuteOfDay(5))
}

func TestMinuteOfDayOn(t *testing.T) {
	day, err := ParseDate("2026-09-07")
	require.NoError(t, err)

	at := MinuteOfDayOn(day, 570)
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, day.Day(), at.Day())
}
