package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

type Shift int

const (
	ShiftAM Shift = iota
	ShiftPM
)

// Shifts lists the working-day halves in display order.
var Shifts = []Shift{ShiftAM, ShiftPM}

func (s Shift) String() string {
	if s == ShiftPM {
		return "PM"
	}
	return "AM"
}

// Hours is the office time span of the shift.
func (s Shift) Hours() string {
	if s == ShiftPM {
		return "14:00 - 18:00"
	}
	return "9:00 - 13:00"
}

func ParseShift(s string) (Shift, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return ShiftAM, nil
	case "PM":
		return ShiftPM, nil
	}
	return 0, ErrInvalidShift
}

// Location is where a staff member works for one shift.
type Location string

const (
	Office Location = "Office"
	Home   Location = "Home"
)

// Entry marks WFH shifts for one staff member on one day.
type Entry struct {
	RequestID int
	StaffID   int
	Date      time.Time
	IsAM      bool
	IsPM      bool
}

func (e Entry) Covers(s Shift) bool {
	if s == ShiftPM {
		return e.IsPM
	}
	return e.IsAM
}

// Person is one row of a schedule.
type Person struct {
	StaffID int
	Name    string
	Entries []Entry
}

// EntryOn returns the entry for date, if any.
func (p Person) EntryOn(date time.Time) (Entry, bool) {
	d := validator.Day(date)
	for _, e := range p.Entries {
		if e.Date.Equal(d) {
			return e, true
		}
	}
	return Entry{}, false
}

// LocationOn reports Home only when an entry for date covers shift.
func (p Person) LocationOn(date time.Time, s Shift) Location {
	if e, ok := p.EntryOn(date); ok && e.Covers(s) {
		return Home
	}
	return Office
}

// Schedule is the normalized result of the schedule adapter.
type Schedule struct {
	Self Person
	Team []Person
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

func NewRange(start, end time.Time) (Range, error) {
	r := Range{Start: validator.Day(start), End: validator.Day(end)}
	if r.End.Before(r.Start) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

func (r Range) Contains(date time.Time) bool {
	d := validator.Day(date)
	return !d.Before(r.Start) && !d.After(r.End)
}

// MergeEntries keeps one entry per day, OR-ing shift flags of duplicates,
// and drops entries outside r. The result is ordered by date.
func MergeEntries(entries []Entry, r Range) []Entry {
	byDay := make(map[time.Time]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Date = validator.Day(e.Date)
		if !r.Contains(e.Date) {
			continue
		}
		if i, ok := byDay[e.Date]; ok {
			out[i].IsAM = out[i].IsAM || e.IsAM
			out[i].IsPM = out[i].IsPM || e.IsPM
			continue
		}
		byDay[e.Date] = len(out)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
