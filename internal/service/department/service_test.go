package department

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/department"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func day(s string) time.Time {
	t, err := time.Parse(validator.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeStaffRepo struct {
	all []staff.Member
}

func (f *fakeStaffRepo) GetRole(ctx context.Context, staffID int) (staff.Role, error) {
	return staff.RoleHR, nil
}

func (f *fakeStaffRepo) GetTeam(ctx context.Context, staffID int) ([]staff.Member, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeStaffRepo) List(ctx context.Context) ([]staff.Member, error) {
	return f.all, nil
}

type fakeScheduleRepo struct {
	mu       sync.Mutex
	managers map[int]schedule.ManagerSchedule
	calls    map[int]int
}

func (f *fakeScheduleRepo) StaffEntries(ctx context.Context, staffID int, r schedule.Range) ([]schedule.Entry, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeScheduleRepo) TeamEntries(ctx context.Context, staffID int, r schedule.Range) ([]schedule.PersonEntries, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeScheduleRepo) ManagerTeam(ctx context.Context, managerID int, r schedule.Range) (schedule.ManagerSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[int]int)
	}
	f.calls[managerID]++
	ms, ok := f.managers[managerID]
	if !ok {
		return schedule.ManagerSchedule{}, apperror.ErrNotFound
	}
	return ms, nil
}

func directory() []staff.Member {
	return []staff.Member{
		{StaffID: 130002, FirstName: "Jack", LastName: "Sim", Department: "CEO", Role: staff.RoleHR},
		{StaffID: 140894, FirstName: "Rahim", LastName: "Khalid", Department: "Sales", ReportingManagerID: 130002, Role: staff.RoleManager},
		{StaffID: 140002, FirstName: "Susan", LastName: "Goh", Department: "Sales", ReportingManagerID: 140894, Role: staff.RoleStaff},
		{StaffID: 140003, FirstName: "Janice", LastName: "Chan", Department: "Sales", ReportingManagerID: 140894, Role: staff.RoleStaff},
		{StaffID: 150008, FirstName: "Eric", LastName: "Loh", Department: "Engineering", ReportingManagerID: 130002, Role: staff.RoleStaff},
	}
}

func newService() (department.DepartmentService, *fakeScheduleRepo) {
	sched := &fakeScheduleRepo{managers: map[int]schedule.ManagerSchedule{
		140894: {
			Self: schedule.PersonEntries{StaffID: 140894},
			Team: []schedule.PersonEntries{
				{StaffID: 140002, Entries: []schedule.Entry{{Date: day("2024-01-08"), IsAM: true, IsPM: true}}},
				{StaffID: 140003, Entries: []schedule.Entry{{Date: day("2024-01-08"), IsPM: true}}},
			},
		},
		130002: {
			Self: schedule.PersonEntries{StaffID: 130002},
			Team: []schedule.PersonEntries{
				{StaffID: 140894, Entries: []schedule.Entry{{Date: day("2024-01-09"), IsAM: true}}},
				{StaffID: 150008, Entries: []schedule.Entry{{Date: day("2024-01-08"), IsAM: true}}},
			},
		},
	}}
	return NewDepartmentService(&fakeStaffRepo{all: directory()}, sched), sched
}

func TestCalendar(t *testing.T) {
	svc, sched := newService()

	weeks, err := svc.Calendar(context.Background(), day("2024-01-10"))
	require.NoError(t, err)
	require.Len(t, weeks, 3)

	sales := weeks[2]
	assert.Equal(t, "Sales", sales.Department)
	assert.Equal(t, 3, sales.Headcount)
	assert.Equal(t, day("2024-01-07"), sales.Grid.WeekStart)

	// Monday 2024-01-08
	monday := sales.Grid.Days[1]
	assert.Equal(t, 2, monday.Cells[0].InOffice)
	assert.Equal(t, 1, monday.Cells[0].AtHome)
	assert.Equal(t, 1, monday.Cells[1].InOffice)
	assert.Equal(t, 2, monday.Cells[1].AtHome)

	// Each manager is fetched once even when shared by departments.
	assert.Equal(t, 1, sched.calls[130002])
	assert.Equal(t, 1, sched.calls[140894])
}

func TestView(t *testing.T) {
	svc, _ := newService()

	view, err := svc.View(context.Background(), "Sales", day("2024-01-08"), schedule.ShiftAM)
	require.NoError(t, err)
	require.Len(t, view.Teams, 1)

	team := view.Teams[0]
	assert.Equal(t, 140894, team.Manager.StaffID)
	require.Len(t, team.Members, 2)
	assert.Equal(t, schedule.Home, team.Members[0].Location)
	assert.Equal(t, schedule.Office, team.Members[1].Location)

	eng, err := svc.View(context.Background(), "Engineering", day("2024-01-08"), schedule.ShiftAM)
	require.NoError(t, err)
	require.Len(t, eng.Teams, 1)
	assert.Zero(t, eng.Teams[0].Manager.StaffID)
	assert.Equal(t, schedule.Home, eng.Teams[0].Members[0].Location)

	_, err = svc.View(context.Background(), "Finance", day("2024-01-08"), schedule.ShiftAM)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestExportWeek(t *testing.T) {
	svc, _ := newService()

	data, err := svc.ExportWeek(context.Background(), "Sales", day("2024-01-10"))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, memberSheet}, f.GetSheetList())

	name, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Sales", name)

	// Row 5 is Sunday AM, row 7 Monday AM.
	date, _ := f.GetCellValue(summarySheet, "A7")
	home, _ := f.GetCellValue(summarySheet, "E7")
	assert.Equal(t, "2024-01-08", date)
	assert.Equal(t, "1", home)

	rows, err := f.GetRows(memberSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Susan Goh", rows[2][1])
	assert.Equal(t, "Home", rows[2][4])
}

func TestSetRow_ReportsWriteErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, setRow(f, "Sheet1", 1, "a", 1))
	v, _ := f.GetCellValue("Sheet1", "B1")
	assert.Equal(t, "1", v)

	assert.Error(t, setRow(f, "Missing", 1, "a"))
	assert.Error(t, setRow(f, "Sheet1", 0, "a"))
	assert.Error(t, setRows(f, "Sheet1", map[int][]any{2: {"ok"}, -1: {"bad"}}))
}
