package schedule

import (
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

// ExpandRecurring lists every date between start and end inclusive that
// falls on weekday.
func ExpandRecurring(weekday time.Weekday, start, end time.Time) []time.Time {
	start, end = validator.Day(start), validator.Day(end)
	if end.Before(start) {
		return nil
	}
	offset := (int(weekday) - int(start.Weekday()) + 7) % 7
	var dates []time.Time
	for d := start.AddDate(0, 0, offset); !d.After(end); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates
}
