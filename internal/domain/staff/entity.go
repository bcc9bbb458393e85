package staff

import (
	"strconv"
	"strings"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

type Role int

const (
	RoleHR      Role = 1
	RoleStaff   Role = 2
	RoleManager Role = 3
)

func (r Role) IsValid() bool {
	return r == RoleHR || r == RoleStaff || r == RoleManager
}

func (r Role) String() string {
	switch r {
	case RoleHR:
		return "HR"
	case RoleStaff:
		return "Staff"
	case RoleManager:
		return "Manager"
	}
	return "Unknown"
}

// Member is an employee as published by the directory API.
type Member struct {
	StaffID            int
	FirstName          string
	LastName           string
	Department         string
	Position           string
	Country            string
	Email              string
	ReportingManagerID int
	Role               Role
}

// FullName joins first and last name, skipping blanks.
func (m Member) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
}

// ParseStaffID parses the numeric identifier used in routes.
func ParseStaffID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !validator.IsValidStaffID(s) {
		return 0, ErrInvalidStaffID
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ErrInvalidStaffID
	}
	return id, nil
}
