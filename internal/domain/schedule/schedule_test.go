package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-07", "2024-01-07"}, // Sunday
		{"2024-01-10", "2024-01-07"}, // Wednesday
		{"2024-01-13", "2024-01-07"}, // Saturday
		{"2024-03-01", "2024-02-25"}, // crosses month
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, date(tt.want), StartOfWeek(date(tt.in)))
		})
	}

	days := WeekDays(date("2024-01-10"))
	require.Len(t, days, 7)
	assert.Equal(t, date("2024-01-13"), days[6])
	assert.Equal(t, Range{Start: date("2024-01-07"), End: date("2024-01-13")}, WeekRange(date("2024-01-09")))
}

func TestLocationOn_NoEntryMeansOffice(t *testing.T) {
	p := Person{StaffID: 1, Entries: []Entry{{Date: date("2024-01-08"), IsAM: true}}}

	assert.Equal(t, Office, p.LocationOn(date("2024-01-09"), ShiftAM))
	assert.Equal(t, Office, p.LocationOn(date("2024-01-09"), ShiftPM))
	assert.Equal(t, Home, p.LocationOn(date("2024-01-08"), ShiftAM))
	assert.Equal(t, Office, p.LocationOn(date("2024-01-08"), ShiftPM))
}

func TestExpandRecurring(t *testing.T) {
	got := ExpandRecurring(time.Monday, date("2024-01-01"), date("2024-01-15"))
	assert.Equal(t, []time.Time{date("2024-01-01"), date("2024-01-08"), date("2024-01-15")}, got)

	got = ExpandRecurring(time.Friday, date("2024-01-01"), date("2024-01-15"))
	assert.Equal(t, []time.Time{date("2024-01-05"), date("2024-01-12")}, got)

	assert.Empty(t, ExpandRecurring(time.Monday, date("2024-01-02"), date("2024-01-07")))
	assert.Nil(t, ExpandRecurring(time.Monday, date("2024-01-15"), date("2024-01-01")))
}

func TestBuildGrid(t *testing.T) {
	s := Schedule{
		Self: Person{StaffID: 10, Entries: []Entry{{Date: date("2024-01-08"), IsPM: true}}},
		Team: []Person{
			{StaffID: 11, Name: "Ann Lee", Entries: []Entry{{Date: date("2024-01-08"), IsAM: true, IsPM: true}}},
			{StaffID: 12, Name: "Bo Chan"},
			{StaffID: 13, Name: "Cy Ong", Entries: []Entry{{Date: date("2024-01-08"), IsAM: true}}},
		},
	}

	g := BuildGrid(s, date("2024-01-10"))
	require.Len(t, g.Days, 7)
	assert.Equal(t, date("2024-01-07"), g.WeekStart)

	monday := g.Days[1]
	require.Len(t, monday.Cells, 2)
	am, pm := monday.Cells[0], monday.Cells[1]
	assert.Equal(t, Office, am.Mine)
	assert.Equal(t, Home, pm.Mine)
	assert.Equal(t, 1, am.InOffice)
	assert.Equal(t, 2, am.AtHome)
	assert.Equal(t, 2, pm.InOffice)
	assert.Equal(t, 1, pm.AtHome)

	sunday := g.Days[0].Cells[0]
	assert.Equal(t, 3, sunday.InOffice)
	assert.Equal(t, 0, sunday.AtHome)
}

func TestBuildPanel(t *testing.T) {
	team := []Person{
		{StaffID: 11, Name: "Ann Lee", Entries: []Entry{{Date: date("2024-01-08"), IsAM: true}}},
		{StaffID: 12, Name: "Bo Chan"},
	}

	p := BuildPanel(team, date("2024-01-08"), ShiftAM, 12)
	require.Len(t, p.Home, 1)
	require.Len(t, p.Office, 1)
	assert.Equal(t, 11, p.Home[0].StaffID)
	assert.False(t, p.Home[0].Highlighted)
	assert.True(t, p.Office[0].Highlighted)

	p = BuildPanel(team, date("2024-01-08"), ShiftPM, 0)
	assert.Empty(t, p.Home)
	assert.Len(t, p.Office, 2)
}

func TestSearch(t *testing.T) {
	team := []Person{
		{StaffID: 140003, Name: "Janice Chan"},
		{StaffID: 140004, Name: "Mary Teo"},
		{StaffID: 150008, Name: "Jan Tan"},
	}

	tests := []struct {
		term   string
		wantID int
		found  bool
	}{
		{"JAN", 140003, true},
		{"teo", 140004, true},
		{"15000", 150008, true},
		{"  mary ", 140004, true},
		{"zzz", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			p, ok := Search(team, tt.term)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, p.StaffID)
		})
	}
}

func TestMergeEntries(t *testing.T) {
	r, err := NewRange(date("2024-01-07"), date("2024-01-13"))
	require.NoError(t, err)

	got := MergeEntries([]Entry{
		{Date: date("2024-01-09"), IsPM: true},
		{Date: date("2024-01-08"), IsAM: true},
		{Date: date("2024-01-08"), IsPM: true},
		{Date: date("2024-01-20"), IsAM: true},
	}, r)

	require.Len(t, got, 2)
	assert.Equal(t, date("2024-01-08"), got[0].Date)
	assert.True(t, got[0].IsAM)
	assert.True(t, got[0].IsPM)
	assert.Equal(t, date("2024-01-09"), got[1].Date)

	_, err = NewRange(date("2024-01-13"), date("2024-01-07"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestParseShift(t *testing.T) {
	s, err := ParseShift("pm")
	require.NoError(t, err)
	assert.Equal(t, ShiftPM, s)
	assert.Equal(t, "14:00 - 18:00", s.Hours())

	_, err = ParseShift("noon")
	assert.ErrorIs(t, err, ErrInvalidShift)
}
