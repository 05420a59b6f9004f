package common

import (
	"time"
)

const DateFormat = "2006-01-02"

// EpochStart is the first day with burn data worth importing,
// 2021-07-01T00:00:00Z. Freshly created projects start here.
const EpochStart int64 = 1625097600

// TruncateToDay drops the time-of-day part, keeping the UTC calendar day.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns every UTC calendar day from `from` through `to`,
// ascending and inclusive of both endpoints' days.
func DaysBetween(from, to time.Time) []time.Time {
	from = TruncateToDay(from)
	to = to.UTC()

	var days []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func FormatDay(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
