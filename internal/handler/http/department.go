package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/department"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/handler/http/response"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DepartmentHandler interface {
	// HR
	HRCalendar(w http.ResponseWriter, r *http.Request)
	DeptView(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type DepartmentHandlerImpl struct {
	departmentService department.DepartmentService
	renderer          *Renderer
	now               func() time.Time
}

func NewDepartmentHandler(departmentService department.DepartmentService, renderer *Renderer, now func() time.Time) DepartmentHandler {
	if now == nil {
		now = time.Now
	}
	return &DepartmentHandlerImpl{
		departmentService: departmentService,
		renderer:          renderer,
		now:               now,
	}
}

type calendarView struct {
	WeekStart time.Time
	WeekEnd   time.Time
	PrevWeek  string
	NextWeek  string
	Days      []time.Time
	Shifts    []schedule.Shift
	Summaries []department.WeekSummary
}

type deptView struct {
	Departments []string
	Selected    string
	Date        string
	Shift       string
	Shifts      []schedule.Shift
	WeekStart   string
	View        department.View
	Loaded      bool
	ExportPath  string
}

// HRCalendar implements DepartmentHandler.
func (h *DepartmentHandlerImpl) HRCalendar(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.hr_calendar")
	status := http.StatusOK

	weekStart := schedule.StartOfWeek(parseDay(r.URL.Query().Get("week"), h.now()))
	view := calendarView{
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 6),
		PrevWeek:  weekStart.AddDate(0, 0, -7).Format(validator.DateLayout),
		NextWeek:  weekStart.AddDate(0, 0, 7).Format(validator.DateLayout),
		Days:      schedule.WeekDays(weekStart),
		Shifts:    schedule.Shifts,
	}

	summaries, err := h.departmentService.Calendar(r.Context(), weekStart)
	if err != nil {
		slog.Error("HR calendar error", "week", view.WeekStart, "error", err)
		p.withError(err, "error.load_failed")
		status = pageStatus(err)
	}
	view.Summaries = summaries

	p.Data = view
	h.renderer.Render(w, status, "hr_calendar", p)
}

// DeptView implements DepartmentHandler.
func (h *DepartmentHandlerImpl) DeptView(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.dept_view")
	status := http.StatusOK
	q := r.URL.Query()

	date := parseDay(q.Get("date"), h.now())
	shift, err := schedule.ParseShift(q.Get("shift"))
	if err != nil {
		shift = schedule.ShiftAM
	}
	view := deptView{
		Date:      date.Format(validator.DateLayout),
		Shift:     shift.String(),
		Shifts:    schedule.Shifts,
		WeekStart: schedule.StartOfWeek(date).Format(validator.DateLayout),
	}

	depts, err := h.departmentService.List(r.Context())
	if err != nil {
		slog.Error("List departments error", "error", err)
		p.withError(err, "error.load_failed")
		p.Data = view
		h.renderer.Render(w, pageStatus(err), "dept_view", p)
		return
	}
	for _, d := range depts {
		view.Departments = append(view.Departments, d.Name)
	}

	view.Selected = q.Get("dept")
	if view.Selected == "" && len(depts) > 0 {
		view.Selected = depts[0].Name
	}

	if view.Selected != "" {
		dv, err := h.departmentService.View(r.Context(), view.Selected, date, shift)
		switch {
		case errors.Is(err, department.ErrDepartmentNotFound):
			p.Error = err.Error()
			status = http.StatusNotFound
		case err != nil:
			slog.Error("Department view error", "dept", view.Selected, "error", err)
			p.withError(err, "error.load_failed")
			status = pageStatus(err)
		default:
			view.View = dv
			view.Loaded = true
			view.ExportPath = exportPath(p.StaffID, view.Selected, view.WeekStart)
		}
	}

	p.Data = view
	h.renderer.Render(w, status, "dept_view", p)
}

// Export implements DepartmentHandler.
func (h *DepartmentHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("dept")
	if name == "" {
		response.BadRequest(w, "dept is required", nil)
		return
	}
	weekStart := schedule.StartOfWeek(parseDay(q.Get("week"), h.now()))

	data, err := h.departmentService.ExportWeek(r.Context(), name, weekStart)
	if err != nil {
		slog.Error("Department export error", "dept", name, "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", fileSafe(name), weekStart.Format(validator.DateLayout))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func exportPath(staffID int, dept, week string) string {
	q := url.Values{"dept": {dept}, "week": {week}}
	return pagePath(staffID, "/1/dept-view/export") + "?" + q.Encode()
}

// fileSafe keeps letters, digits and dashes.
func fileSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "department"
	}
	return b.String()
}
