package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/handler/http/response"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
	scheduleService "github.com/cmlabs-hris/wfh-web/internal/service/schedule"
)

type ScheduleHandler interface {
	StaffSchedule(w http.ResponseWriter, r *http.Request)
	TeamSchedule(w http.ResponseWriter, r *http.Request)
	StaffNavigate(w http.ResponseWriter, r *http.Request)
	TeamNavigate(w http.ResponseWriter, r *http.Request)
	StaffGrid(w http.ResponseWriter, r *http.Request)
	TeamGrid(w http.ResponseWriter, r *http.Request)
}

const fieldView = "view"

type ScheduleHandlerImpl struct {
	views       *scheduleService.ViewStore
	renderer    *Renderer
	now         func() time.Time
	waitTimeout time.Duration
}

func NewScheduleHandler(views *scheduleService.ViewStore, renderer *Renderer, now func() time.Time, waitTimeout time.Duration) ScheduleHandler {
	if now == nil {
		now = time.Now
	}
	return &ScheduleHandlerImpl{
		views:       views,
		renderer:    renderer,
		now:         now,
		waitTimeout: waitTimeout,
	}
}

type scheduleView struct {
	ViewID      string
	Kind        string
	FormPath    string
	WeekStart   time.Time
	WeekEnd     time.Time
	Today       string
	Grid        schedule.Grid
	SearchTerm  string
	NoMatch     bool
	Highlighted string
	Panel       *schedule.Panel
	TeamSize    int
}

// StaffSchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) StaffSchedule(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, schedule.StaffView, "nav.schedule", "/2/schedule")
}

// TeamSchedule implements ScheduleHandler.
func (h *ScheduleHandlerImpl) TeamSchedule(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, schedule.ManagerView, "nav.team_schedule", "/3/schedule")
}

// StaffNavigate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) StaffNavigate(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, schedule.StaffView, "/2/schedule")
}

// TeamNavigate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) TeamNavigate(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, schedule.ManagerView, "/3/schedule")
}

// navigate moves the view a week back or forward and redirects to the page,
// which waits for the latest fetch.
func (h *ScheduleHandlerImpl) navigate(w http.ResponseWriter, r *http.Request, kind schedule.ViewKind, suffix string) {
	staffID := staffIDFrom(r)
	view := h.views.GetOrOpen(r.PostFormValue(fieldView), kind, staffID)

	switch r.PostFormValue("action") {
	case "prev":
		view.PreviousWeek()
	case "next":
		view.NextWeek()
	case "today":
		view.GoToDate(h.now())
	}

	q := url.Values{fieldView: {view.ID}}
	if term := r.PostFormValue("search"); term != "" {
		q.Set("search", term)
	}
	http.Redirect(w, r, pagePath(staffID, suffix)+"?"+q.Encode(), http.StatusSeeOther)
}

// StaffGrid implements ScheduleHandler.
func (h *ScheduleHandlerImpl) StaffGrid(w http.ResponseWriter, r *http.Request) {
	h.grid(w, r, schedule.StaffView)
}

// TeamGrid implements ScheduleHandler.
func (h *ScheduleHandlerImpl) TeamGrid(w http.ResponseWriter, r *http.Request) {
	h.grid(w, r, schedule.ManagerView)
}

// load resolves the screen's view from the view query parameter. Without
// one a fresh view opens on the current week.
func (h *ScheduleHandlerImpl) load(r *http.Request, kind schedule.ViewKind) (*scheduleService.WeekView, scheduleService.ViewState, error) {
	q := r.URL.Query()
	view := h.views.GetOrOpen(q.Get(fieldView), kind, staffIDFrom(r))

	if d, ok := validator.IsValidDate(q.Get("date")); ok {
		view.GoToDate(d)
	} else {
		view.RefreshIfIdle()
	}
	if q.Has("search") {
		view.Search(q.Get("search"))
	}

	ctx := r.Context()
	if h.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.waitTimeout)
		defer cancel()
	}
	st, err := view.Wait(ctx)
	if err != nil {
		return view, st, err
	}
	// Search again so the highlight reflects the freshly loaded team.
	if q.Has("search") {
		view.Search(q.Get("search"))
		st = view.Snapshot()
	}
	return view, st, st.Err
}

func (h *ScheduleHandlerImpl) render(w http.ResponseWriter, r *http.Request, kind schedule.ViewKind, titleID, suffix string) {
	p := newPage(r, titleID)
	status := http.StatusOK
	view, st, err := h.load(r, kind)
	if err != nil {
		slog.Error("Schedule load error", "staff_id", p.StaffID, "view", kind.String(), "error", err)
		p.withError(err, "error.load_failed")
		status = pageStatus(err)
	}

	sv := scheduleView{
		ViewID:     view.ID,
		Kind:       kind.String(),
		FormPath:   pagePath(p.StaffID, suffix),
		WeekStart:  st.WeekStart,
		WeekEnd:    st.WeekStart.AddDate(0, 0, 6),
		Today:      validator.Day(h.now()).Format(validator.DateLayout),
		Grid:       st.Grid(),
		SearchTerm: st.SearchTerm,
		TeamSize:   len(st.Schedule.Team),
	}
	if st.SearchTerm != "" {
		sv.NoMatch = st.HighlightedID == 0
		for _, m := range st.Schedule.Team {
			if m.StaffID == st.HighlightedID {
				sv.Highlighted = m.Name
			}
		}
	}

	q := r.URL.Query()
	if slot, ok := validator.IsValidDate(q.Get("slot")); ok {
		if shift, err := schedule.ParseShift(q.Get("shift")); err == nil {
			panel := st.Panel(slot, shift)
			sv.Panel = &panel
		}
	}

	p.Data = sv
	h.renderer.Render(w, status, "schedule", p)
}

type gridCellJSON struct {
	Date     string `json:"date"`
	Shift    string `json:"shift"`
	Mine     string `json:"my_schedule"`
	InOffice int    `json:"in_office"`
	AtHome   int    `json:"at_home"`
}

type gridJSON struct {
	ViewID        string         `json:"view_id"`
	WeekStart     string         `json:"week_start"`
	HighlightedID int            `json:"highlighted_staff_id,omitempty"`
	Cells         []gridCellJSON `json:"cells"`
}

func (h *ScheduleHandlerImpl) grid(w http.ResponseWriter, r *http.Request, kind schedule.ViewKind) {
	view, st, err := h.load(r, kind)
	if err != nil {
		slog.Error("Schedule grid error", "view", kind.String(), "error", err)
		response.HandleError(w, err)
		return
	}

	g := st.Grid()
	out := gridJSON{
		ViewID:        view.ID,
		WeekStart:     g.WeekStart.Format(validator.DateLayout),
		HighlightedID: st.HighlightedID,
		Cells:         []gridCellJSON{},
	}
	for _, day := range g.Days {
		for _, c := range day.Cells {
			out.Cells = append(out.Cells, gridCellJSON{
				Date:     c.Date.Format(validator.DateLayout),
				Shift:    c.Shift.String(),
				Mine:     string(c.Mine),
				InOffice: c.InOffice,
				AtHome:   c.AtHome,
			})
		}
	}
	response.Success(w, out)
}
