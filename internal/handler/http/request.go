package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type RequestHandler interface {
	// Staff
	ApplyPage(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	WithdrawalPage(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService request.RequestService
	renderer       *Renderer
	now            func() time.Time
}

func NewRequestHandler(requestService request.RequestService, renderer *Renderer, now func() time.Time) RequestHandler {
	if now == nil {
		now = time.Now
	}
	return &RequestHandlerImpl{
		requestService: requestService,
		renderer:       renderer,
		now:            now,
	}
}

type applyView struct {
	Form      request.ApplyForm
	Types     []request.RequestType
	Weekdays  []string
	MinDate   string
	MaxDate   string
	Previewed bool
	Preview   []time.Time
}

type recordRow struct {
	request.DateRecord
	CanCancel bool
}

type requestsView struct {
	Filter   request.RecordFilter
	Statuses []request.Status
	Shifts   []string
	Records  []recordRow
	Filtered bool
}

type withdrawalView struct {
	Entries   []request.ApprovedEntry
	Selection string
	Reason    string
}

// ApplyPage implements RequestHandler.
func (h *RequestHandlerImpl) ApplyPage(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.wfh_request")
	form := request.ApplyForm{
		StaffID:     staffIDFrom(r),
		RequestType: request.RequestType(r.URL.Query().Get("type")),
	}
	if !form.RequestType.IsValid() {
		form.RequestType = request.TypeAdHoc
	}
	p.Data = h.applyView(form)
	h.renderer.Render(w, http.StatusOK, "wfh_request", p)
}

// Apply implements RequestHandler.
func (h *RequestHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.wfh_request")
	form := request.ApplyForm{
		StaffID:       staffIDFrom(r),
		RequestType:   request.RequestType(r.PostFormValue(request.FieldRequestType)),
		StartDate:     r.PostFormValue(request.FieldStartDate),
		EndDate:       r.PostFormValue(request.FieldEndDate),
		RecurrenceDay: r.PostFormValue(request.FieldRecurrenceDays),
		IsAM:          r.PostFormValue("is_am") != "",
		IsPM:          r.PostFormValue("is_pm") != "",
		Reason:        r.PostFormValue(request.FieldReason),
	}

	view := h.applyView(form)
	if r.PostFormValue("action") == "preview" {
		view.Previewed = true
		view.Preview = form.PreviewDates()
		p.Data = view
		h.renderer.Render(w, http.StatusOK, "wfh_request", p)
		return
	}

	if err := h.requestService.Apply(r.Context(), form); err != nil {
		slog.Error("Apply WFH request error", "staff_id", form.StaffID, "error", err)
		p.withError(err, "error.request.submit_failed")
		p.Data = view
		h.renderer.Render(w, pageStatus(err), "wfh_request", p)
		return
	}

	// The form comes back empty but keeps the chosen request type.
	redirectWithMessage(w, r, pagePath(form.StaffID, "/2/wfh-request"), "flash.request.submitted",
		"type", string(form.RequestType))
}

func (h *RequestHandlerImpl) applyView(form request.ApplyForm) applyView {
	from, to := h.requestService.RequestWindow().Bounds(h.now())
	return applyView{
		Form:     form,
		Types:    []request.RequestType{request.TypeAdHoc, request.TypeRecurring},
		Weekdays: request.WeekdayLabels(),
		MinDate:  from.Format(validator.DateLayout),
		MaxDate:  to.Format(validator.DateLayout),
	}
}

// MyRequests implements RequestHandler.
func (h *RequestHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.requests")
	h.renderRequests(w, r, p, http.StatusOK)
}

// Cancel implements RequestHandler.
func (h *RequestHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.requests")
	staffID := staffIDFrom(r)

	requestID, err := strconv.Atoi(chi.URLParam(r, "requestId"))
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if err != nil || requestID <= 0 || !ok {
		p.withError(request.ErrRequestNotFound, "error.load_failed")
		h.renderRequests(w, r, p, http.StatusNotFound)
		return
	}

	if err := h.requestService.Cancel(r.Context(), staffID, requestID, date); err != nil {
		slog.Error("Cancel WFH request error", "staff_id", staffID, "request_id", requestID, "error", err)
		p.withError(err, "error.request.submit_failed")
		h.renderRequests(w, r, p, pageStatus(err))
		return
	}

	redirectWithMessage(w, r, pagePath(staffID, "/2/requests"), "flash.request.cancelled")
}

func (h *RequestHandlerImpl) renderRequests(w http.ResponseWriter, r *http.Request, p pageData, status int) {
	q := r.URL.Query()
	filter := request.RecordFilter{
		Date:      q.Get("date"),
		ShiftType: q.Get("shift_type"),
	}
	if s := q.Get("status"); s != "" {
		filter.Status = request.ParseStatus(s)
	}

	view := requestsView{
		Filter:   filter,
		Statuses: request.StatusValues,
		Shifts:   []string{request.ShiftType(true, true), request.ShiftType(true, false), request.ShiftType(false, true)},
		Filtered: filter != request.RecordFilter{},
	}

	records, err := h.requestService.ListMine(r.Context(), staffIDFrom(r), filter)
	if err != nil {
		slog.Error("List WFH requests error", "staff_id", p.StaffID, "error", err)
		if p.Error == "" {
			p.withError(err, "error.load_failed")
		}
		if status == http.StatusOK {
			status = pageStatus(err)
		}
	}
	for _, rec := range records {
		view.Records = append(view.Records, recordRow{
			DateRecord: rec,
			CanCancel:  request.RequestLifecycle.CanFire(rec.Status, request.TriggerCancel),
		})
	}

	p.Data = view
	h.renderer.Render(w, status, "requests", p)
}

// WithdrawalPage implements RequestHandler.
func (h *RequestHandlerImpl) WithdrawalPage(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.withdrawal")
	h.renderWithdrawal(w, r, p, http.StatusOK, withdrawalView{})
}

// Withdraw implements RequestHandler.
func (h *RequestHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.withdrawal")
	form := request.WithdrawalForm{
		StaffID:   staffIDFrom(r),
		Selection: r.PostFormValue(request.FieldEntry),
		Reason:    r.PostFormValue(request.FieldReason),
	}

	if err := h.requestService.Withdraw(r.Context(), form); err != nil {
		slog.Error("Withdraw WFH date error", "staff_id", form.StaffID, "error", err)
		p.withError(err, "error.request.submit_failed")
		h.renderWithdrawal(w, r, p, pageStatus(err), withdrawalView{Selection: form.Selection, Reason: form.Reason})
		return
	}

	redirectWithMessage(w, r, pagePath(form.StaffID, "/2/withdrawal"), "flash.withdrawal.submitted")
}

func (h *RequestHandlerImpl) renderWithdrawal(w http.ResponseWriter, r *http.Request, p pageData, status int, view withdrawalView) {
	entries, err := h.requestService.ApprovedEntries(r.Context(), staffIDFrom(r))
	if err != nil {
		slog.Error("List approved entries error", "staff_id", p.StaffID, "error", err)
		if p.Error == "" {
			p.withError(err, "error.load_failed")
		}
		if status == http.StatusOK {
			status = pageStatus(err)
		}
	}
	view.Entries = entries

	p.Data = view
	h.renderer.Render(w, status, "withdrawal", p)
}
