package request

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/period"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testWindow = DateWindow{Before: period.MustParse("2m"), After: period.MustParse("3m")}
	testToday  = time.Date(2024, 2, 20, 15, 0, 0, 0, time.UTC)
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestApplyForm_AdHocPayload(t *testing.T) {
	form := ApplyForm{
		StaffID:       140002,
		RequestType:   TypeAdHoc,
		StartDate:     "2024-03-01",
		EndDate:       "2024-03-09",
		RecurrenceDay: "Mon",
		IsAM:          true,
		Reason:        "doctor",
	}
	require.NoError(t, form.Validate(testWindow, testToday))

	p := form.Payload(testToday)
	assert.Equal(t, TypeAdHoc, p.RequestType)
	assert.Equal(t, "2024-03-01", p.StartDate)
	assert.Equal(t, "2024-03-01", p.EndDate)
	assert.Nil(t, p.RecurrenceDays)
	assert.True(t, p.IsAM)
	assert.False(t, p.IsPM)
	assert.Equal(t, "doctor", p.Reason)
	assert.Equal(t, "2024-02-20", p.ApplyDate)
}

func TestApplyForm_RecurringPayload(t *testing.T) {
	form := ApplyForm{
		StaffID:       140002,
		RequestType:   TypeRecurring,
		StartDate:     "2024-03-04",
		EndDate:       "2024-03-18",
		RecurrenceDay: "Mon",
		IsPM:          true,
		Reason:        "  childcare ",
	}
	require.NoError(t, form.Validate(testWindow, testToday))

	p := form.Payload(testToday)
	require.NotNil(t, p.RecurrenceDays)
	assert.Equal(t, "monday", *p.RecurrenceDays)
	assert.Equal(t, "2024-03-18", p.EndDate)
	assert.Equal(t, "childcare", p.Reason)
	assert.Equal(t, []time.Time{day("2024-03-04"), day("2024-03-11"), day("2024-03-18")}, form.PreviewDates())
}

func TestApplyForm_Validate(t *testing.T) {
	valid := func() ApplyForm {
		return ApplyForm{
			RequestType:   TypeRecurring,
			StartDate:     "2024-03-04",
			EndDate:       "2024-03-18",
			RecurrenceDay: "Wed",
			IsAM:          true,
			Reason:        "focus",
		}
	}

	tests := []struct {
		name   string
		mutate func(f *ApplyForm)
		field  string
	}{
		{"no timing", func(f *ApplyForm) { f.IsAM, f.IsPM = false, false }, FieldTiming},
		{"no start", func(f *ApplyForm) { f.StartDate = "" }, FieldStartDate},
		{"start too early", func(f *ApplyForm) { f.StartDate = "2023-12-01" }, FieldStartDate},
		{"no weekday", func(f *ApplyForm) { f.RecurrenceDay = "" }, FieldRecurrenceDays},
		{"no end", func(f *ApplyForm) { f.EndDate = "" }, FieldEndDate},
		{"end before start", func(f *ApplyForm) { f.EndDate = "2024-03-01" }, FieldDateRange},
		{"end too late", func(f *ApplyForm) { f.EndDate = "2024-06-21" }, FieldEndDate},
		{"blank reason", func(f *ApplyForm) { f.Reason = "   " }, FieldReason},
		{"bad type", func(f *ApplyForm) { f.RequestType = "Weekly" }, FieldRequestType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(&f)
			err := f.Validate(testWindow, testToday)
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.Has(tt.field), verrs.Error())
		})
	}

	f := valid()
	assert.NoError(t, f.Validate(testWindow, testToday))

	// window edges are inclusive
	f.StartDate, f.EndDate = "2023-12-20", "2024-05-20"
	assert.NoError(t, f.Validate(testWindow, testToday))
}

func TestApplyForm_TimingMessage(t *testing.T) {
	f := ApplyForm{RequestType: TypeAdHoc, StartDate: "2024-03-01", Reason: "x"}
	err := f.Validate(testWindow, testToday)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, map[string]string{FieldTiming: "validation.timing.required"}, verrs.ToMap())
}

func TestShiftType(t *testing.T) {
	assert.Equal(t, "Full Day", ShiftType(true, true))
	assert.Equal(t, "AM Shift", ShiftType(true, false))
	assert.Equal(t, "PM Shift", ShiftType(false, true))
	assert.Equal(t, "Unknown", ShiftType(false, false))
}

func TestLifecycle(t *testing.T) {
	tests := []struct {
		from    Status
		trigger Trigger
		to      Status
		ok      bool
	}{
		{StatusPending, TriggerApprove, StatusApproved, true},
		{StatusPending, TriggerReject, StatusRejected, true},
		{StatusPending, TriggerCancel, StatusCancelled, true},
		{StatusApproved, TriggerWithdraw, StatusWithdrawn, true},
		{StatusApproved, TriggerCancel, StatusApproved, false},
		{StatusApproved, TriggerReject, StatusApproved, false},
		{StatusRejected, TriggerApprove, StatusRejected, false},
		{StatusCancelled, TriggerApprove, StatusCancelled, false},
		{StatusWithdrawn, TriggerApprove, StatusWithdrawn, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.trigger), func(t *testing.T) {
			assert.Equal(t, tt.ok, RequestLifecycle.CanFire(tt.from, tt.trigger))
			got, err := RequestLifecycle.Fire(tt.from, tt.trigger)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
			assert.Equal(t, tt.to, got)
		})
	}

	assert.True(t, RequestLifecycle.IsTerminal(StatusRejected))
	assert.True(t, RequestLifecycle.IsTerminal(StatusCancelled))
	assert.False(t, RequestLifecycle.IsTerminal(StatusPending))
	assert.ElementsMatch(t, []Trigger{TriggerApprove, TriggerReject, TriggerCancel}, RequestLifecycle.Permitted(StatusPending))

	assert.False(t, WithdrawalLifecycle.CanFire(StatusPending, TriggerCancel))
	assert.True(t, WithdrawalLifecycle.IsTerminal(StatusApproved))
}

func TestGroupPending(t *testing.T) {
	groups := GroupPending([]PendingDate{
		{RequestID: 101, StaffID: 1, Date: day("2024-10-01")},
		{RequestID: 103, StaffID: 2, Date: day("2024-10-01")},
		{RequestID: 101, StaffID: 1, Date: day("2024-10-02")},
		{RequestID: 104, StaffID: 2, Date: day("2024-10-03")},
	})

	require.Len(t, groups, 3)
	assert.Equal(t, 101, groups[0].RequestID)
	assert.Equal(t, []time.Time{day("2024-10-01"), day("2024-10-02")}, groups[0].Dates)
	assert.Equal(t, 103, groups[1].RequestID)
	assert.Equal(t, 104, groups[2].RequestID)
	assert.Empty(t, GroupPending(nil))
}

func TestWithdrawalForm(t *testing.T) {
	f := WithdrawalForm{Selection: SelectionKey(42, day("2024-02-22")), Reason: "meeting"}
	require.NoError(t, f.Validate())

	id, date, err := ParseSelection(f.Selection)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, day("2024-02-22"), date)

	bad := WithdrawalForm{Selection: "", Reason: ""}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, bad.Validate(), &verrs)
	assert.True(t, verrs.Has(FieldEntry))
	assert.True(t, verrs.Has(FieldReason))

	for _, s := range []string{"42", "x:2024-01-01", "42:2024-13-01", "0:2024-01-01"} {
		_, _, err := ParseSelection(s)
		assert.ErrorIs(t, err, ErrInvalidSelection, s)
	}
}

func TestDecisionForm(t *testing.T) {
	f := DecisionForm{ManagerID: 140894, Status: StatusApproved, Notes: "ok"}
	assert.NoError(t, f.Validate())

	f.Notes = "  "
	var verrs validator.ValidationErrors
	require.ErrorAs(t, f.Validate(), &verrs)
	assert.True(t, verrs.Has(FieldDecisionNotes))

	f = DecisionForm{Status: StatusCancelled, Notes: "x"}
	require.ErrorAs(t, f.Validate(), &verrs)
	assert.True(t, verrs.Has(FieldDecisionStatus))
}

func TestWeekdays(t *testing.T) {
	full, ok := FullWeekday("Thu")
	assert.True(t, ok)
	assert.Equal(t, "thursday", full)

	_, ok = FullWeekday("Thursday")
	assert.False(t, ok)

	wd, ok := ParseWeekday("sunday")
	assert.True(t, ok)
	assert.Equal(t, time.Sunday, wd)
	assert.Len(t, WeekdayLabels(), 7)
	assert.Equal(t, StatusApproved, ParseStatus("approved"))
}

func TestRecordFilter(t *testing.T) {
	r := DateRecord{Date: day("2024-03-01"), IsAM: true, Status: StatusPending}

	assert.True(t, RecordFilter{}.Match(r))
	assert.True(t, RecordFilter{Date: "2024-03-01", ShiftType: "AM Shift", Status: StatusPending}.Match(r))
	assert.False(t, RecordFilter{Date: "2024-03-02"}.Match(r))
	assert.False(t, RecordFilter{ShiftType: "Full Day"}.Match(r))
	assert.False(t, RecordFilter{Status: StatusApproved}.Match(r))
}

func TestRequestType_IsValid(t *testing.T) {
	assert.True(t, TypeAdHoc.IsValid())
	assert.True(t, TypeRecurring.IsValid())
	assert.False(t, RequestType("ad-hoc").IsValid())
	assert.False(t, RequestType("").IsValid())
}

func TestDateWindow_MonthEnd(t *testing.T) {
	today := time.Date(2024, 4, 30, 9, 0, 0, 0, time.UTC)
	from, to := testWindow.Bounds(today)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 7, 30, 0, 0, 0, 0, time.UTC), to)
	assert.True(t, testWindow.Contains(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), today))
	assert.False(t, testWindow.Contains(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), today))
}
