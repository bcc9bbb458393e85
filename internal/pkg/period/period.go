package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Unit is the calendar unit of a Period.
type Unit byte

const (
	Day   Unit = 'd'
	Week  Unit = 'w'
	Month Unit = 'm'
)

// Period is a calendar span such as "2w" or "3m".
type Period struct {
	N    int
	Unit Unit
}

// Parse reads "<n>d", "<n>w" or "<n>m". A bare "0" is the empty period.
func Parse(s string) (Period, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "0" {
		return Period{}, nil
	}
	if len(s) < 2 {
		return Period{}, fmt.Errorf("invalid period %q", s)
	}
	unit := Unit(s[len(s)-1])
	switch unit {
	case Day, Week, Month:
	default:
		return Period{}, fmt.Errorf("invalid period unit in %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 {
		return Period{}, fmt.Errorf("invalid period amount in %q", s)
	}
	return Period{N: n, Unit: unit}, nil
}

// MustParse is Parse for constants.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// AddTo moves t forward by the period.
func (p Period) AddTo(t time.Time) time.Time {
	return p.shift(t, 1)
}

// SubtractFrom moves t back by the period.
func (p Period) SubtractFrom(t time.Time) time.Time {
	return p.shift(t, -1)
}

func (p Period) shift(t time.Time, sign int) time.Time {
	switch p.Unit {
	case Day:
		return t.AddDate(0, 0, sign*p.N)
	case Week:
		return t.AddDate(0, 0, sign*7*p.N)
	case Month:
		return addMonths(t, sign*p.N)
	}
	return t
}

// addMonths moves t by n calendar months, clamping the day to the last day
// of the target month (Apr 30 minus 2 months is Feb 29, not Mar 1).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func (p Period) String() string {
	if p.N == 0 {
		return "0"
	}
	return strconv.Itoa(p.N) + string(p.Unit)
}
