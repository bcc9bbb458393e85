package department

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/department"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds parallel team schedule requests.
const maxConcurrentFetches = 4

type DepartmentServiceImpl struct {
	staffRepo    staff.Repository
	scheduleRepo schedule.Repository
}

func NewDepartmentService(staffRepo staff.Repository, scheduleRepo schedule.Repository) department.DepartmentService {
	return &DepartmentServiceImpl{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
	}
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.Department, error) {
	members, err := s.staffRepo.List(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return []department.Department{}, nil
		}
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return department.GroupByDepartment(members), nil
}

// Calendar implements department.DepartmentService.
func (s *DepartmentServiceImpl) Calendar(ctx context.Context, weekOf time.Time) ([]department.WeekSummary, error) {
	depts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	r := schedule.WeekRange(weekOf)
	var managers []int
	for _, d := range depts {
		managers = append(managers, d.ReportingManagers()...)
	}
	entries, err := s.fetchEntries(ctx, managers, r)
	if err != nil {
		return nil, err
	}

	out := make([]department.WeekSummary, 0, len(depts))
	for _, d := range depts {
		people := toPeople(d.Members, entries, r)
		out = append(out, department.WeekSummary{
			Department: d.Name,
			Headcount:  len(people),
			Grid:       schedule.BuildGrid(schedule.Schedule{Team: people}, r.Start),
		})
	}
	return out, nil
}

// View implements department.DepartmentService.
func (s *DepartmentServiceImpl) View(ctx context.Context, name string, date time.Time, shift schedule.Shift) (department.View, error) {
	d, err := s.find(ctx, name)
	if err != nil {
		return department.View{}, err
	}

	r, err := schedule.NewRange(date, date)
	if err != nil {
		return department.View{}, err
	}
	entries, err := s.fetchEntries(ctx, d.ReportingManagers(), r)
	if err != nil {
		return department.View{}, err
	}

	status := func(m staff.Member) department.MemberStatus {
		p := schedule.Person{StaffID: m.StaffID, Entries: entries[m.StaffID]}
		return department.MemberStatus{Member: m, Location: p.LocationOn(r.Start, shift)}
	}

	view := department.View{Department: d.Name, Date: r.Start, Shift: shift}
	placed := make(map[int]bool)
	for _, team := range d.Teams() {
		ts := department.TeamStatus{Manager: team.Manager}
		for _, m := range team.Members {
			ts.Members = append(ts.Members, status(m))
			placed[m.StaffID] = true
		}
		placed[team.Manager.StaffID] = true
		view.Teams = append(view.Teams, ts)
	}

	// Members whose manager sits outside the department.
	var rest department.TeamStatus
	for _, m := range d.Members {
		if !placed[m.StaffID] {
			rest.Members = append(rest.Members, status(m))
		}
	}
	if len(rest.Members) > 0 {
		view.Teams = append(view.Teams, rest)
	}

	return view, nil
}

// ExportWeek implements department.DepartmentService.
func (s *DepartmentServiceImpl) ExportWeek(ctx context.Context, name string, weekOf time.Time) ([]byte, error) {
	d, err := s.find(ctx, name)
	if err != nil {
		return nil, err
	}

	r := schedule.WeekRange(weekOf)
	entries, err := s.fetchEntries(ctx, d.ReportingManagers(), r)
	if err != nil {
		return nil, err
	}

	data, err := writeWeekWorkbook(d, toPeople(d.Members, entries, r), r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", department.ErrExportFailed, err)
	}
	return data, nil
}

func (s *DepartmentServiceImpl) find(ctx context.Context, name string) (department.Department, error) {
	depts, err := s.List(ctx)
	if err != nil {
		return department.Department{}, err
	}
	d, ok := department.Find(depts, name)
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

// fetchEntries loads each manager's team schedule and merges the rows by
// staff id. Managers with no schedule data are skipped.
func (s *DepartmentServiceImpl) fetchEntries(ctx context.Context, managers []int, r schedule.Range) (map[int][]schedule.Entry, error) {
	var (
		mu      sync.Mutex
		entries = make(map[int][]schedule.Entry)
		seen    = make(map[int]bool)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for _, id := range managers {
		if seen[id] {
			continue
		}
		seen[id] = true

		g.Go(func() error {
			ms, err := s.scheduleRepo.ManagerTeam(gctx, id, r)
			if err != nil {
				if apperror.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("load schedule of manager %d: %w", id, err)
			}

			mu.Lock()
			defer mu.Unlock()
			rows := append([]schedule.PersonEntries{ms.Self}, ms.Team...)
			for _, p := range rows {
				if p.StaffID == 0 {
					continue
				}
				entries[p.StaffID] = append(entries[p.StaffID], p.Entries...)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func toPeople(members []staff.Member, entries map[int][]schedule.Entry, r schedule.Range) []schedule.Person {
	people := make([]schedule.Person, 0, len(members))
	for _, m := range members {
		people = append(people, schedule.Person{
			StaffID: m.StaffID,
			Name:    m.FullName(),
			Entries: schedule.MergeEntries(entries[m.StaffID], r),
		})
	}
	return people
}
