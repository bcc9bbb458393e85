package staff

// ResolutionState tracks where a role lookup stands.
type ResolutionState int

const (
	Loading ResolutionState = iota
	Resolved
	Failed
)

// RoleResolution is the outcome of resolving a staff member's role.
// Role is meaningful only when State is Resolved, Err only when Failed.
type RoleResolution struct {
	State   ResolutionState
	StaffID int
	Role    Role
	Err     error
}

func Pending(staffID int) RoleResolution {
	return RoleResolution{State: Loading, StaffID: staffID}
}

func ResolvedAs(staffID int, role Role) RoleResolution {
	return RoleResolution{State: Resolved, StaffID: staffID, Role: role}
}

func FailedWith(staffID int, err error) RoleResolution {
	return RoleResolution{State: Failed, StaffID: staffID, Err: err}
}

// Allows reports whether the resolved role grants permission. Unresolved
// lookups grant nothing.
func (r RoleResolution) Allows(p Permission) bool {
	return r.State == Resolved && HasPermission(r.Role, p)
}

func (r RoleResolution) IsResolved() bool { return r.State == Resolved }
