package schedule

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"golang.org/x/sync/errgroup"
)

// ScheduleServiceImpl is the single place where backend schedule replies are
// normalized into schedule.Schedule.
type ScheduleServiceImpl struct {
	staffRepo    staff.Repository
	scheduleRepo schedule.Repository
}

func NewScheduleService(staffRepo staff.Repository, scheduleRepo schedule.Repository) schedule.ScheduleService {
	return &ScheduleServiceImpl{
		staffRepo:    staffRepo,
		scheduleRepo: scheduleRepo,
	}
}

// Load implements schedule.ScheduleService. The roster and the schedule are
// fetched concurrently; a 404 from either means "no records".
func (s *ScheduleServiceImpl) Load(ctx context.Context, kind schedule.ViewKind, staffID int, r schedule.Range) (schedule.Schedule, error) {
	var (
		roster []staff.Member
		self   []schedule.Entry
		team   []schedule.PersonEntries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.staffRepo.GetTeam(gctx, staffID)
		if err != nil && !apperror.IsNotFound(err) {
			return fmt.Errorf("load roster: %w", err)
		}
		roster = members
		return nil
	})

	switch kind {
	case schedule.ManagerView:
		g.Go(func() error {
			ms, err := s.scheduleRepo.ManagerTeam(gctx, staffID, r)
			if err != nil {
				if apperror.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("load team schedule: %w", err)
			}
			self = ms.Self.Entries
			team = ms.Team
			return nil
		})
	default:
		g.Go(func() error {
			entries, err := s.scheduleRepo.StaffEntries(gctx, staffID, r)
			if err != nil && !apperror.IsNotFound(err) {
				return fmt.Errorf("load own schedule: %w", err)
			}
			self = entries
			return nil
		})
		g.Go(func() error {
			people, err := s.scheduleRepo.TeamEntries(gctx, staffID, r)
			if err != nil && !apperror.IsNotFound(err) {
				return fmt.Errorf("load team schedule: %w", err)
			}
			team = people
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return schedule.Schedule{}, err
	}

	return normalize(kind, staffID, r, roster, self, team), nil
}

// normalize unions the roster with schedule rows by staff id. Roster members
// without rows get no entries, which reads as in office.
func normalize(kind schedule.ViewKind, staffID int, r schedule.Range, roster []staff.Member, self []schedule.Entry, team []schedule.PersonEntries) schedule.Schedule {
	names := make(map[int]string, len(roster))
	for _, m := range roster {
		names[m.StaffID] = m.FullName()
	}

	entries := make(map[int][]schedule.Entry, len(team))
	for _, p := range team {
		entries[p.StaffID] = append(entries[p.StaffID], p.Entries...)
	}

	out := schedule.Schedule{
		Self: schedule.Person{
			StaffID: staffID,
			Name:    displayName(names, staffID),
			Entries: schedule.MergeEntries(self, r),
		},
		Team: []schedule.Person{},
	}

	seen := make(map[int]bool)
	add := func(id int) {
		if seen[id] {
			return
		}
		seen[id] = true
		if id == staffID && kind == schedule.StaffView {
			return
		}
		rows := entries[id]
		if id == staffID {
			rows = append(rows, self...)
		}
		out.Team = append(out.Team, schedule.Person{
			StaffID: id,
			Name:    displayName(names, id),
			Entries: schedule.MergeEntries(rows, r),
		})
	}

	if kind == schedule.ManagerView {
		add(staffID)
	}
	for _, m := range roster {
		add(m.StaffID)
	}
	for _, p := range team {
		add(p.StaffID)
	}

	return out
}

func displayName(names map[int]string, id int) string {
	if n := names[id]; n != "" {
		return n
	}
	return "Staff " + strconv.Itoa(id)
}
