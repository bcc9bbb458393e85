package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
)

const dateLayout = "2006-01-02"

// flexInt accepts 42 or "42"; the backend echoes ids back in either form.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("flexInt: %w", err)
		}
		*f = flexInt(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("flexInt: %w", err)
	}
	*f = flexInt(i)
	return nil
}

// parseDate reads ISO days and the RFC 1123 form Flask emits for dates.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{dateLayout, time.RFC1123, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// parseOptionalDate returns the zero time for a blank or malformed value.
func parseOptionalDate(s string) time.Time {
	if strings.TrimSpace(s) == "" {
		return time.Time{}
	}
	t, err := parseDate(s)
	if err != nil {
		slog.Debug("ignoring malformed date", "value", s, "error", err)
	}
	return t
}

type employeeJSON struct {
	StaffID          flexInt `json:"staff_id"`
	FirstName        string  `json:"staff_fname"`
	LastName         string  `json:"staff_lname"`
	Dept             string  `json:"dept"`
	Position         string  `json:"position"`
	Country          string  `json:"country"`
	Email            string  `json:"email"`
	ReportingManager flexInt `json:"reporting_manager"`
	Role             flexInt `json:"role"`
}

func (e employeeJSON) toDomain() staff.Member {
	return staff.Member{
		StaffID:            int(e.StaffID),
		FirstName:          e.FirstName,
		LastName:           e.LastName,
		Department:         e.Dept,
		Position:           e.Position,
		Country:            e.Country,
		Email:              e.Email,
		ReportingManagerID: int(e.ReportingManager),
		Role:               staff.Role(e.Role),
	}
}

type roleJSON struct {
	Role flexInt `json:"role"`
}

type entryJSON struct {
	RequestID     flexInt `json:"request_id"`
	StaffID       flexInt `json:"staff_id"`
	SpecificDate  string  `json:"specific_date"`
	IsAM          bool    `json:"is_am"`
	IsPM          bool    `json:"is_pm"`
	RequestStatus string  `json:"request_status"`
}

// approved reports whether the entry counts toward the schedule. Schedule
// endpoints that omit request_status only return approved rows.
func (e entryJSON) approved() bool {
	return e.RequestStatus == "" || request.ParseStatus(e.RequestStatus) == request.StatusApproved
}

func (e entryJSON) toEntry(fallbackStaff int) (schedule.Entry, error) {
	d, err := parseDate(e.SpecificDate)
	if err != nil {
		return schedule.Entry{}, err
	}
	staffID := int(e.StaffID)
	if staffID == 0 {
		staffID = fallbackStaff
	}
	return schedule.Entry{
		RequestID: int(e.RequestID),
		StaffID:   staffID,
		Date:      d,
		IsAM:      e.IsAM,
		IsPM:      e.IsPM,
	}, nil
}

func toEntries(items []entryJSON, staffID int) ([]schedule.Entry, error) {
	entries := make([]schedule.Entry, 0, len(items))
	for _, it := range items {
		if !it.approved() {
			continue
		}
		e, err := it.toEntry(staffID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

type personScheduleJSON struct {
	StaffID         flexInt     `json:"staff_id"`
	ScheduleDetails []entryJSON `json:"ScheduleDetails"`
}

func (p personScheduleJSON) toDomain() (schedule.PersonEntries, error) {
	entries, err := toEntries(p.ScheduleDetails, int(p.StaffID))
	if err != nil {
		return schedule.PersonEntries{}, err
	}
	return schedule.PersonEntries{StaffID: int(p.StaffID), Entries: entries}, nil
}

type managerScheduleJSON struct {
	Staff personScheduleJSON   `json:"staff"`
	Team  []personScheduleJSON `json:"team"`
}

type dateRecordJSON struct {
	RequestID     flexInt `json:"request_id"`
	StaffID       flexInt `json:"staff_id"`
	ManagerID     flexInt `json:"manager_id"`
	RequestType   string  `json:"request_type"`
	SpecificDate  string  `json:"specific_date"`
	IsAM          bool    `json:"is_am"`
	IsPM          bool    `json:"is_pm"`
	RequestStatus string  `json:"request_status"`
	ApplyDate     string  `json:"apply_date"`
	RequestReason string  `json:"request_reason"`
}

func (r dateRecordJSON) toDomain() (request.DateRecord, error) {
	d, err := parseDate(r.SpecificDate)
	if err != nil {
		return request.DateRecord{}, err
	}
	return request.DateRecord{
		RequestID: int(r.RequestID),
		StaffID:   int(r.StaffID),
		ManagerID: int(r.ManagerID),
		Type:      request.RequestType(r.RequestType),
		Date:      d,
		IsAM:      r.IsAM,
		IsPM:      r.IsPM,
		ApplyDate: parseOptionalDate(r.ApplyDate),
		Reason:    r.RequestReason,
		Status:    request.ParseStatus(r.RequestStatus),
	}, nil
}

type teamPendingJSON struct {
	TeamPendingRequests []struct {
		StaffID         flexInt     `json:"staff_id"`
		PendingRequests []entryJSON `json:"pending_requests"`
	} `json:"team_pending_requests"`
}

type wfhRequestJSON struct {
	RequestID      flexInt `json:"request_id"`
	StaffID        flexInt `json:"staff_id"`
	ManagerID      flexInt `json:"manager_id"`
	RequestType    string  `json:"request_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	RecurrenceDays *string `json:"recurrence_days"`
	IsAM           bool    `json:"is_am"`
	IsPM           bool    `json:"is_pm"`
	ApplyDate      string  `json:"apply_date"`
	RequestReason  string  `json:"request_reason"`
	RequestStatus  string  `json:"request_status"`
}

func (w wfhRequestJSON) toDomain() request.WfhRequest {
	r := request.WfhRequest{
		RequestID: int(w.RequestID),
		StaffID:   int(w.StaffID),
		ManagerID: int(w.ManagerID),
		Type:      request.RequestType(w.RequestType),
		StartDate: parseOptionalDate(w.StartDate),
		EndDate:   parseOptionalDate(w.EndDate),
		IsAM:      w.IsAM,
		IsPM:      w.IsPM,
		ApplyDate: parseOptionalDate(w.ApplyDate),
		Reason:    w.RequestReason,
		Status:    request.ParseStatus(w.RequestStatus),
	}
	if w.RecurrenceDays != nil {
		r.RecurrenceDay = *w.RecurrenceDays
	}
	return r
}

// dateItem is an all_dates element: a bare date or {"specific_date": ...}.
type dateItem struct {
	time.Time
}

func (d *dateItem) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var obj struct {
			SpecificDate string `json:"specific_date"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		s = obj.SpecificDate
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type requestDetailJSON struct {
	Data        wfhRequestJSON `json:"data"`
	IsRecurring bool           `json:"is_recurring"`
	AllDates    []dateItem     `json:"all_dates"`
}

type withdrawalJSON struct {
	WithdrawalID flexInt `json:"withdrawal_id"`
	RequestID    flexInt `json:"request_id"`
	StaffID      flexInt `json:"staff_id"`
	SpecificDate string  `json:"specific_date"`
	IsAM         bool    `json:"is_am"`
	IsPM         bool    `json:"is_pm"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
}

type teamWithdrawalsJSON struct {
	TeamPendingWithdrawals []struct {
		StaffID            flexInt          `json:"staff_id"`
		PendingWithdrawals []withdrawalJSON `json:"pending_withdrawals"`
	} `json:"team_pending_withdrawals"`
}
