package common

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestDaysBetween(t *testing.T) {
	from := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 7, 3, 15, 30, 0, 0, time.UTC)

	days := DaysBetween(from, to)
	assert.Equal(t, len(days), 3)
	assert.Equal(t, FormatDay(days[0]), "2021-07-01")
	assert.Equal(t, FormatDay(days[1]), "2021-07-02")
	assert.Equal(t, FormatDay(days[2]), "2021-07-03")
}

func TestDaysBetweenAscending(t *testing.T) {
	from := time.Date(2023, 2, 26, 12, 0, 0, 0, time.UTC)
	to := time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC)

	days := DaysBetween(from, to)
	assert.Equal(t, FormatDay(days[0]), "2023-02-26")
	for i := 1; i < len(days); i++ {
		assert.Equal(t, days[i].Sub(days[i-1]), 24*time.Hour)
	}
	assert.Equal(t, FormatDay(days[len(days)-1]), "2023-03-02")
}

func TestDaysBetweenSameDay(t *testing.T) {
	at := time.Date(2021, 7, 1, 8, 0, 0, 0, time.UTC)

	days := DaysBetween(at, at)
	assert.Equal(t, len(days), 1)
	assert.Equal(t, days[0].Unix(), EpochStart)
}

func TestDaysBetweenEmpty(t *testing.T) {
	from := time.Date(2021, 7, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)

	assert.Equal(t, len(DaysBetween(from, to)), 0)
}

func TestTruncateToDay(t *testing.T) {
	at := time.Date(2021, 7, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, TruncateToDay(at).Unix(), EpochStart)
}
