package schedule

import "time"

// Cell is one (day, shift) slot of the weekly grid.
type Cell struct {
	Date     time.Time
	Shift    Shift
	Mine     Location
	InOffice int
	AtHome   int
}

type Day struct {
	Date  time.Time
	Cells []Cell
}

// Grid is the 7-day x {AM, PM} weekly view.
type Grid struct {
	WeekStart time.Time
	Days      []Day
}

// BuildGrid computes my location and team counts for every slot of the
// week containing weekStart.
func BuildGrid(s Schedule, weekStart time.Time) Grid {
	g := Grid{WeekStart: StartOfWeek(weekStart)}
	for _, date := range WeekDays(weekStart) {
		day := Day{Date: date}
		for _, shift := range Shifts {
			office, home := TeamCounts(s.Team, date, shift)
			day.Cells = append(day.Cells, Cell{
				Date:     date,
				Shift:    shift,
				Mine:     s.Self.LocationOn(date, shift),
				InOffice: office,
				AtHome:   home,
			})
		}
		g.Days = append(g.Days, day)
	}
	return g
}

// TeamCounts tallies team members per location. Members without an entry
// for date count as in office.
func TeamCounts(team []Person, date time.Time, shift Shift) (office, home int) {
	for _, p := range team {
		if p.LocationOn(date, shift) == Home {
			home++
		} else {
			office++
		}
	}
	return office, home
}

type PanelMember struct {
	StaffID     int
	Name        string
	Highlighted bool
}

// Panel lists the team split by location for one slot.
type Panel struct {
	Date   time.Time
	Shift  Shift
	Office []PanelMember
	Home   []PanelMember
}

func BuildPanel(team []Person, date time.Time, shift Shift, highlighted int) Panel {
	p := Panel{Date: date, Shift: shift, Office: []PanelMember{}, Home: []PanelMember{}}
	for _, m := range team {
		pm := PanelMember{
			StaffID:     m.StaffID,
			Name:        m.Name,
			Highlighted: highlighted != 0 && m.StaffID == highlighted,
		}
		if m.LocationOn(date, shift) == Home {
			p.Home = append(p.Home, pm)
		} else {
			p.Office = append(p.Office, pm)
		}
	}
	return p
}
