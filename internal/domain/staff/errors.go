package staff

import "errors"

var (
	ErrInvalidStaffID   = errors.New("invalid staff id")
	ErrStaffNotFound    = errors.New("staff not found")
	ErrUnknownRole      = errors.New("unknown role")
	ErrRoleNotResolved  = errors.New("role not resolved")
	ErrPermissionDenied = errors.New("insufficient permissions")
)
