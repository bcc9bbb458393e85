package request

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

// Form field names shared by validation and templates.
const (
	FieldTiming         = "timing"
	FieldRequestType    = "request_type"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldRecurrenceDays = "recurrence_days"
	FieldDateRange      = "date_range"
	FieldReason         = "request_reason"
	FieldEntry          = "entry"
	FieldDecisionStatus = "decision_status"
	FieldDecisionNotes  = "decision_notes"
)

type ApplyForm struct {
	StaffID       int
	RequestType   RequestType
	StartDate     string
	EndDate       string
	RecurrenceDay string
	IsAM          bool
	IsPM          bool
	Reason        string
}

func (f *ApplyForm) Validate(window DateWindow, today time.Time) error {
	var errs validator.ValidationErrors

	// Timing
	if !f.IsAM && !f.IsPM {
		errs = append(errs, validator.ValidationError{
			Field:   FieldTiming,
			Message: "validation.timing.required",
		})
	}

	// Request type
	if !f.RequestType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   FieldRequestType,
			Message: "validation.request_type.invalid",
		})
	}

	// Start date
	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   FieldStartDate,
			Message: "validation.start_date.required",
		})
	} else if !window.Contains(start, today) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldStartDate,
			Message: "validation.start_date.window",
		})
	}

	if f.RequestType == TypeRecurring {
		if _, ok := FullWeekday(f.RecurrenceDay); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   FieldRecurrenceDays,
				Message: "validation.recurrence_day.required",
			})
		}

		end, endOK := validator.IsValidDate(f.EndDate)
		switch {
		case !endOK:
			errs = append(errs, validator.ValidationError{
				Field:   FieldEndDate,
				Message: "validation.end_date.required",
			})
		case startOK && end.Before(start):
			errs = append(errs, validator.ValidationError{
				Field:   FieldDateRange,
				Message: "validation.date_range.order",
			})
		case !window.Contains(end, today):
			errs = append(errs, validator.ValidationError{
				Field:   FieldEndDate,
				Message: "validation.end_date.window",
			})
		}
	}

	// Reason
	if validator.IsEmpty(f.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldReason,
			Message: "validation.reason.required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Payload builds the body for POST /api/apply. Call after Validate.
func (f *ApplyForm) Payload(today time.Time) ApplyPayload {
	p := ApplyPayload{
		StaffID:     f.StaffID,
		RequestType: f.RequestType,
		StartDate:   strings.TrimSpace(f.StartDate),
		EndDate:     strings.TrimSpace(f.StartDate),
		IsAM:        f.IsAM,
		IsPM:        f.IsPM,
		ApplyDate:   validator.Day(today).Format(validator.DateLayout),
		Reason:      strings.TrimSpace(f.Reason),
	}
	if f.RequestType == TypeRecurring {
		p.EndDate = strings.TrimSpace(f.EndDate)
		if full, ok := FullWeekday(f.RecurrenceDay); ok {
			p.RecurrenceDays = &full
		}
	}
	return p
}

// PreviewDates lists the dates a valid form would book.
func (f *ApplyForm) PreviewDates() []time.Time {
	start, ok := validator.IsValidDate(f.StartDate)
	if !ok {
		return nil
	}
	if f.RequestType != TypeRecurring {
		return []time.Time{start}
	}
	end, ok := validator.IsValidDate(f.EndDate)
	day, dayOK := ParseWeekday(f.RecurrenceDay)
	if !ok || !dayOK {
		return nil
	}
	return schedule.ExpandRecurring(day, start, end)
}

type ApplyPayload struct {
	StaffID        int         `json:"staff_id"`
	RequestType    RequestType `json:"request_type"`
	StartDate      string      `json:"start_date"`
	EndDate        string      `json:"end_date"`
	RecurrenceDays *string     `json:"recurrence_days"`
	IsAM           bool        `json:"is_am"`
	IsPM           bool        `json:"is_pm"`
	ApplyDate      string      `json:"apply_date"`
	Reason         string      `json:"request_reason"`
}

// WithdrawalForm picks one approved entry, encoded as "requestID:date".
type WithdrawalForm struct {
	StaffID   int
	Selection string
	Reason    string
}

func (f *WithdrawalForm) Validate() error {
	var errs validator.ValidationErrors

	if _, _, err := ParseSelection(f.Selection); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   FieldEntry,
			Message: "validation.withdrawal.entry.required",
		})
	}

	if validator.IsEmpty(f.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldReason,
			Message: "validation.reason.required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SelectionKey encodes an entry for a form radio value.
func SelectionKey(requestID int, date time.Time) string {
	return strconv.Itoa(requestID) + ":" + date.Format(validator.DateLayout)
}

func ParseSelection(s string) (int, time.Time, error) {
	idPart, datePart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, time.Time{}, ErrInvalidSelection
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return 0, time.Time{}, ErrInvalidSelection
	}
	date, valid := validator.IsValidDate(datePart)
	if !valid {
		return 0, time.Time{}, ErrInvalidSelection
	}
	return id, date, nil
}

type WithdrawPayload struct {
	RequestID    int    `json:"request_id"`
	Reason       string `json:"reason"`
	SpecificDate string `json:"specific_date"`
}

// DecisionForm records a manager's verdict on a request or withdrawal.
type DecisionForm struct {
	ManagerID int
	Status    Status
	Notes     string
}

func (f *DecisionForm) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := DecisionTrigger(f.Status); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   FieldDecisionStatus,
			Message: "validation.decision.status.invalid",
		})
	}

	if validator.IsEmpty(f.Notes) {
		errs = append(errs, validator.ValidationError{
			Field:   FieldDecisionNotes,
			Message: "validation.decision.notes.required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionPayload struct {
	RequestID      int    `json:"request_id"`
	DecisionStatus Status `json:"decision_status"`
	DecisionNotes  string `json:"decision_notes"`
	ManagerID      int    `json:"manager_id"`
}

type WithdrawalDecisionPayload struct {
	RequestID      int    `json:"request_id"`
	SpecificDate   string `json:"specific_date"`
	ManagerID      int    `json:"manager_id"`
	DecisionStatus Status `json:"decision_status"`
	DecisionNotes  string `json:"decision_notes"`
}

// RecordFilter narrows the own-requests list. Empty fields match all.
type RecordFilter struct {
	Date      string
	ShiftType string
	Status    Status
}

func (f RecordFilter) Match(r DateRecord) bool {
	if d, ok := validator.IsValidDate(f.Date); ok && !r.Date.Equal(d) {
		return false
	}
	if f.ShiftType != "" && r.ShiftType() != f.ShiftType {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	return true
}
