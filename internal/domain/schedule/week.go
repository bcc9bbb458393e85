package schedule

import (
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := validator.Day(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekRange is the seven-day window beginning at the week containing t.
func WeekRange(t time.Time) Range {
	start := StartOfWeek(t)
	return Range{Start: start, End: start.AddDate(0, 0, 6)}
}

// WeekDays lists the seven days of the week containing t.
func WeekDays(t time.Time) []time.Time {
	start := StartOfWeek(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
