package department

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
)

// Department is one org unit from the employee directory.
type Department struct {
	Name    string
	Members []staff.Member
}

// Team is a manager and their direct reports within a department.
type Team struct {
	Manager staff.Member
	Members []staff.Member
}

// GroupByDepartment buckets members by department, ordered by name.
func GroupByDepartment(members []staff.Member) []Department {
	index := make(map[string]int)
	var depts []Department
	for _, m := range members {
		i, ok := index[m.Department]
		if !ok {
			i = len(depts)
			index[m.Department] = i
			depts = append(depts, Department{Name: m.Department})
		}
		depts[i].Members = append(depts[i].Members, m)
	}
	sort.SliceStable(depts, func(i, j int) bool { return depts[i].Name < depts[j].Name })
	return depts
}

// Find returns the department with the given name.
func Find(depts []Department, name string) (Department, bool) {
	for _, d := range depts {
		if d.Name == name {
			return d, true
		}
	}
	return Department{}, false
}

// Teams returns one team per manager in the department, each holding the
// department members that report to that manager.
func (d Department) Teams() []Team {
	var teams []Team
	for _, mgr := range d.Members {
		if mgr.Role != staff.RoleManager {
			continue
		}
		t := Team{Manager: mgr}
		for _, m := range d.Members {
			if m.ReportingManagerID == mgr.StaffID && m.StaffID != mgr.StaffID {
				t.Members = append(t.Members, m)
			}
		}
		teams = append(teams, t)
	}
	return teams
}

// ReportingManagers lists distinct managers the department's members
// report to, in first-seen order.
func (d Department) ReportingManagers() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, m := range d.Members {
		id := m.ReportingManagerID
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// MemberStatus is a member's location for one slot.
type MemberStatus struct {
	Member   staff.Member
	Location schedule.Location
}

type TeamStatus struct {
	Manager staff.Member
	Members []MemberStatus
}

// View is the department drill-down for one date and shift.
type View struct {
	Department string
	Date       time.Time
	Shift      schedule.Shift
	Teams      []TeamStatus
}

// WeekSummary is a department's weekly Office/Home counts.
type WeekSummary struct {
	Department string
	Headcount  int
	Grid       schedule.Grid
}
