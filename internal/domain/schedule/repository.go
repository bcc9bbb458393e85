package schedule

import "context"

// PersonEntries is one staff member's raw entries as returned by the backend.
type PersonEntries struct {
	StaffID int
	Entries []Entry
}

// ManagerSchedule is the backend's combined manager + team reply.
type ManagerSchedule struct {
	Self PersonEntries
	Team []PersonEntries
}

// Repository reads approved WFH schedule data. Implementations return
// apperror.ErrNotFound when the backend has no records for the range.
type Repository interface {
	StaffEntries(ctx context.Context, staffID int, r Range) ([]Entry, error)
	TeamEntries(ctx context.Context, staffID int, r Range) ([]PersonEntries, error)
	ManagerTeam(ctx context.Context, managerID int, r Range) (ManagerSchedule, error)
}
