package schedule

import "context"

// ViewKind selects how the team half of a schedule is assembled.
type ViewKind int

const (
	// StaffView shows a staff member's own entries and their teammates.
	StaffView ViewKind = iota
	// ManagerView shows a manager's entries and everyone reporting to them.
	ManagerView
)

func (k ViewKind) String() string {
	if k == ManagerView {
		return "manager"
	}
	return "staff"
}

type ScheduleService interface {
	Load(ctx context.Context, kind ViewKind, staffID int, r Range) (Schedule, error)
}
