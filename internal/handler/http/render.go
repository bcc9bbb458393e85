package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	"github.com/cmlabs-hris/wfh-web/internal/domain/schedule"
	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/apperror"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/i18n"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets/app.css assets/app.js
var assetsFS embed.FS

var templateFuncs = template.FuncMap{
	"date":         formatDate,
	"longDate":     formatLongDate,
	"shiftType":    request.ShiftType,
	"selectionKey": request.SelectionKey,
	"isHome":       isHome,
	"itoa":         strconv.Itoa,
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(validator.DateLayout)
}

func formatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon, 02 Jan 2006")
}

func isHome(l schedule.Location) bool {
	return l == schedule.Home
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page with the layout and the shared partials,
// whose file names start with an underscore.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	shared := []string{"templates/layout.html"}
	var pages []string
	for _, name := range names {
		base := strings.TrimPrefix(name, "templates/")
		switch {
		case base == "layout.html":
		case strings.HasPrefix(base, "_"):
			shared = append(shared, name)
		default:
			pages = append(pages, name)
		}
	}

	rd := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range pages {
		page := strings.TrimSuffix(strings.TrimPrefix(name, "templates/"), ".html")
		files := append(append([]string(nil), shared...), name)
		tmpl, err := template.New(page).Funcs(templateFuncs).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		rd.pages[page] = tmpl
	}
	return rd, nil
}

// Render executes page into a buffer so a template failure never leaves a
// half-written response.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := rd.pages[page]
	if !ok {
		slog.Error("render error", "page", page, "error", "unknown template")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("render error", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

type navLink struct {
	Label string
	Href  string
}

// pageData is the root value of every template.
type pageData struct {
	ctx         context.Context
	Title       string
	StaffID     int
	Resolution  staff.RoleResolution
	Nav         []navLink
	Message     string
	Error       string
	FieldErrors map[string]string
	Data        any
}

// T translates a message id for the request's locale.
func (p pageData) T(id string, args ...any) string {
	if len(args) >= 2 {
		data := make(map[string]any, len(args)/2)
		for i := 0; i+1 < len(args); i += 2 {
			if k, ok := args[i].(string); ok {
				data[k] = args[i+1]
			}
		}
		return i18n.T(p.ctx, id, data)
	}
	return i18n.T(p.ctx, id)
}

// RoleFailed reports whether role resolution failed for this page.
func (p pageData) RoleFailed() bool {
	return p.Resolution.State == staff.Failed
}

func (p pageData) Path(suffix string) string {
	return pagePath(p.StaffID, suffix)
}

func newPage(r *http.Request, titleID string) pageData {
	ctx := r.Context()
	res := middleware.ResolutionFromContext(ctx)
	p := pageData{
		ctx:         ctx,
		Title:       i18n.T(ctx, titleID),
		StaffID:     res.StaffID,
		Resolution:  res,
		Nav:         navFor(ctx, res),
		FieldErrors: map[string]string{},
	}
	// Flash messages travel as message ids so only known text is shown.
	if id := r.URL.Query().Get("message"); strings.HasPrefix(id, "flash.") {
		p.Message = i18n.T(ctx, id)
	}
	if p.RoleFailed() {
		p.Error = i18n.T(ctx, "error.role.failed")
	}
	return p
}

// withError sets the page-level error for err and per-field validation
// messages when err carries them.
func (p *pageData) withError(err error, fallbackID string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		p.FieldErrors = verrs.Translate(func(id string) string { return i18n.T(p.ctx, id) })
		return
	}
	p.Error = userMessage(p.ctx, err, fallbackID)
}

// userMessage turns a backend or domain error into display text. Server
// messages are shown verbatim.
func userMessage(ctx context.Context, err error, fallbackID string) string {
	if msg, ok := apperror.ServerMessage(err); ok {
		return msg
	}
	if apperror.IsNetwork(err) {
		if fallbackID == "error.request.submit_failed" {
			return i18n.T(ctx, "error.network.submit")
		}
		return i18n.T(ctx, "error.network.load")
	}
	if errors.Is(err, request.ErrCancelNotAllowed) {
		return i18n.T(ctx, "error.request.cancel_not_allowed")
	}
	known := []error{
		request.ErrEntryNotFound,
		request.ErrAlreadyDecided,
		request.ErrRequestNotFound,
		request.ErrWithdrawalNotFound,
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return i18n.T(ctx, fallbackID)
}

// pageStatus picks the response code for a page re-rendered with err.
func pageStatus(err error) int {
	var verrs validator.ValidationErrors
	var se *apperror.ServerError
	switch {
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, request.ErrRequestNotFound), errors.Is(err, request.ErrWithdrawalNotFound):
		return http.StatusNotFound
	case errors.Is(err, request.ErrCancelNotAllowed), errors.Is(err, request.ErrAlreadyDecided):
		return http.StatusConflict
	case errors.Is(err, request.ErrEntryNotFound):
		return http.StatusUnprocessableEntity
	case errors.As(err, &se):
		if se.StatusCode >= 400 && se.StatusCode < 500 {
			return se.StatusCode
		}
		return http.StatusBadGateway
	case apperror.IsNetwork(err):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

type navEntry struct {
	permission staff.Permission
	labelID    string
	suffix     string
}

var navEntries = []navEntry{
	{staff.PermissionScheduleViewOwn, "nav.schedule", "/2/schedule"},
	{staff.PermissionRequestCreate, "nav.wfh_request", "/2/wfh-request"},
	{staff.PermissionRequestViewOwn, "nav.requests", "/2/requests"},
	{staff.PermissionWithdrawalCreate, "nav.withdrawal", "/2/withdrawal"},
	{staff.PermissionScheduleViewTeam, "nav.team_schedule", "/3/schedule"},
	{staff.PermissionRequestViewTeam, "nav.pending_requests", "/3/pending-requests"},
	{staff.PermissionWithdrawalViewTeam, "nav.withdrawal_requests", "/3/withdrawal-requests"},
	{staff.PermissionHRCalendar, "nav.hr_calendar", "/1/hr-calendar"},
	{staff.PermissionDeptView, "nav.dept_view", "/1/dept-view"},
}

// navFor lists only the routes the resolved role may open.
func navFor(ctx context.Context, res staff.RoleResolution) []navLink {
	var links []navLink
	for _, e := range navEntries {
		if res.Allows(e.permission) {
			links = append(links, navLink{
				Label: i18n.T(ctx, e.labelID),
				Href:  middleware.HomePath(res.StaffID) + e.suffix,
			})
		}
	}
	return links
}

// redirectWithMessage completes a post/redirect/get cycle with a flash id.
func redirectWithMessage(w http.ResponseWriter, r *http.Request, path, messageID string, extra ...string) {
	q := url.Values{"message": {messageID}}
	for i := 0; i+1 < len(extra); i += 2 {
		q.Set(extra[i], extra[i+1])
	}
	http.Redirect(w, r, path+"?"+q.Encode(), http.StatusSeeOther)
}

func pagePath(staffID int, suffix string) string {
	return middleware.HomePath(staffID) + suffix
}

func staffIDFrom(r *http.Request) int {
	return middleware.ResolutionFromContext(r.Context()).StaffID
}

// parseDay reads an optional YYYY-MM-DD query value, falling back to today.
func parseDay(raw string, now time.Time) time.Time {
	if d, ok := validator.IsValidDate(raw); ok {
		return d
	}
	return validator.Day(now)
}
