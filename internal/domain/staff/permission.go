package staff

type Permission string

const (
	// HR
	PermissionDeptView   Permission = "dept.view"
	PermissionHRCalendar Permission = "hr.calendar"
	PermissionDeptExport Permission = "dept.export"

	// Staff
	PermissionScheduleViewOwn  Permission = "schedule.view_own"
	PermissionRequestCreate    Permission = "request.create"
	PermissionRequestViewOwn   Permission = "request.view_own"
	PermissionRequestCancel    Permission = "request.cancel"
	PermissionWithdrawalCreate Permission = "withdrawal.create"

	// Manager
	PermissionScheduleViewTeam   Permission = "schedule.view_team"
	PermissionRequestViewTeam    Permission = "request.view_team"
	PermissionRequestApprove     Permission = "request.approve"
	PermissionWithdrawalViewTeam Permission = "withdrawal.view_team"
	PermissionWithdrawalApprove  Permission = "withdrawal.approve"
)

var staffPermissions = []Permission{
	PermissionScheduleViewOwn,
	PermissionRequestCreate,
	PermissionRequestViewOwn,
	PermissionRequestCancel,
	PermissionWithdrawalCreate,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleHR: append([]Permission{
		PermissionDeptView,
		PermissionHRCalendar,
		PermissionDeptExport,
	}, staffPermissions...),
	RoleStaff: staffPermissions,
	RoleManager: append([]Permission{
		PermissionScheduleViewTeam,
		PermissionRequestViewTeam,
		PermissionRequestApprove,
		PermissionWithdrawalViewTeam,
		PermissionWithdrawalApprove,
	}, staffPermissions...),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
