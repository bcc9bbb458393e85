package request

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

type RequestType string

const (
	TypeAdHoc     RequestType = "Ad-hoc"
	TypeRecurring RequestType = "Recurring"
)

var requestTypes = []string{string(TypeAdHoc), string(TypeRecurring)}

func (t RequestType) IsValid() bool {
	return validator.IsInSlice(string(t), requestTypes)
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
	StatusWithdrawn Status = "Withdrawn"
)

var StatusValues = []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusWithdrawn}

// ParseStatus accepts the backend's spellings, including lower case.
func ParseStatus(s string) Status {
	for _, v := range StatusValues {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v
		}
	}
	return Status(s)
}

// weekdays maps the form's short labels to the names the backend stores.
var weekdays = []struct {
	Short string
	Full  string
	Day   time.Weekday
}{
	{"Mon", "monday", time.Monday},
	{"Tue", "tuesday", time.Tuesday},
	{"Wed", "wednesday", time.Wednesday},
	{"Thu", "thursday", time.Thursday},
	{"Fri", "friday", time.Friday},
	{"Sat", "saturday", time.Saturday},
	{"Sun", "sunday", time.Sunday},
}

// WeekdayLabels lists the short labels in form order.
func WeekdayLabels() []string {
	labels := make([]string, len(weekdays))
	for i, w := range weekdays {
		labels[i] = w.Short
	}
	return labels
}

// FullWeekday maps "Mon" to "monday".
func FullWeekday(short string) (string, bool) {
	for _, w := range weekdays {
		if strings.EqualFold(w.Short, strings.TrimSpace(short)) {
			return w.Full, true
		}
	}
	return "", false
}

// ParseWeekday reads either a short label or a full backend name.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.TrimSpace(s)
	for _, w := range weekdays {
		if strings.EqualFold(w.Short, s) || strings.EqualFold(w.Full, s) {
			return w.Day, true
		}
	}
	return 0, false
}

// WfhRequest is a submitted work-from-home request.
type WfhRequest struct {
	RequestID     int
	StaffID       int
	ManagerID     int
	Type          RequestType
	StartDate     time.Time
	EndDate       time.Time
	RecurrenceDay string
	IsAM          bool
	IsPM          bool
	ApplyDate     time.Time
	Reason        string
	Status        Status
}

// Detail is a request plus every date it covers.
type Detail struct {
	Request     WfhRequest
	IsRecurring bool
	Dates       []time.Time
}

// DateRecord is one dated instance of a request, as listed for its owner.
type DateRecord struct {
	RequestID int
	StaffID   int
	ManagerID int
	Type      RequestType
	Date      time.Time
	IsAM      bool
	IsPM      bool
	ApplyDate time.Time
	Reason    string
	Status    Status
}

func (d DateRecord) ShiftType() string {
	return ShiftType(d.IsAM, d.IsPM)
}

// PendingDate is one pending date of a team member's request.
type PendingDate struct {
	RequestID int
	StaffID   int
	Date      time.Time
	IsAM      bool
	IsPM      bool
}

// Withdrawal asks to revert one approved date to office.
type Withdrawal struct {
	WithdrawalID int
	RequestID    int
	StaffID      int
	Date         time.Time
	IsAM         bool
	IsPM         bool
	Reason       string
	Status       Status
}

func (w Withdrawal) ShiftType() string {
	return ShiftType(w.IsAM, w.IsPM)
}

// ApprovedEntry is an approved date a staff member may withdraw.
type ApprovedEntry struct {
	RequestID int
	Date      time.Time
	IsAM      bool
	IsPM      bool
	Status    Status
}

func (e ApprovedEntry) ShiftType() string {
	return ShiftType(e.IsAM, e.IsPM)
}

// ShiftType names the covered shifts.
func ShiftType(isAM, isPM bool) string {
	switch {
	case isAM && isPM:
		return "Full Day"
	case isAM:
		return "AM Shift"
	case isPM:
		return "PM Shift"
	}
	return "Unknown"
}
