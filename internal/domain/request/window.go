package request

import (
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/period"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

// DateWindow bounds the dates a form accepts relative to today.
type DateWindow struct {
	Before period.Period
	After  period.Period
}

// Bounds returns the first and last allowed days for today.
func (w DateWindow) Bounds(today time.Time) (from, to time.Time) {
	d := validator.Day(today)
	return w.Before.SubtractFrom(d), w.After.AddTo(d)
}

func (w DateWindow) Contains(date, today time.Time) bool {
	from, to := w.Bounds(today)
	d := validator.Day(date)
	return !d.Before(from) && !d.After(to)
}
