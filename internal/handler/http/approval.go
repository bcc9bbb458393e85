package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/wfh-web/internal/domain/request"
	"github.com/go-chi/chi/v5"
)

type ApprovalHandler interface {
	// Manager
	PendingRequests(w http.ResponseWriter, r *http.Request)
	Approval(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	WithdrawalRequests(w http.ResponseWriter, r *http.Request)
	WithdrawalApproval(w http.ResponseWriter, r *http.Request)
	DecideWithdrawal(w http.ResponseWriter, r *http.Request)
}

type ApprovalHandlerImpl struct {
	requestService request.RequestService
	renderer       *Renderer
}

func NewApprovalHandler(requestService request.RequestService, renderer *Renderer) ApprovalHandler {
	return &ApprovalHandlerImpl{
		requestService: requestService,
		renderer:       renderer,
	}
}

type pendingView struct {
	Groups []request.PendingGroup
}

type approvalView struct {
	Detail     request.Detail
	Loaded     bool
	CanDecide  bool
	Status     request.Status
	Notes      string
	ActionPath string
}

type withdrawalRequestsView struct {
	Withdrawals []request.Withdrawal
}

type withdrawalApprovalView struct {
	Withdrawal request.Withdrawal
	Loaded     bool
	CanDecide  bool
	Status     request.Status
	Notes      string
	ActionPath string
}

// PendingRequests implements ApprovalHandler.
func (h *ApprovalHandlerImpl) PendingRequests(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.pending_requests")
	status := http.StatusOK

	groups, err := h.requestService.PendingGroups(r.Context(), p.StaffID)
	if err != nil {
		slog.Error("List pending requests error", "manager_id", p.StaffID, "error", err)
		p.withError(err, "error.load_failed")
		status = pageStatus(err)
	}

	p.Data = pendingView{Groups: groups}
	h.renderer.Render(w, status, "pending", p)
}

// Approval implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Approval(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.pending_requests")
	h.renderApproval(w, r, p, http.StatusOK, approvalView{})
}

// Decide implements ApprovalHandler.
func (h *ApprovalHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.pending_requests")
	form := request.DecisionForm{
		ManagerID: p.StaffID,
		Status:    request.ParseStatus(r.PostFormValue(request.FieldDecisionStatus)),
		Notes:     strings.TrimSpace(r.PostFormValue(request.FieldDecisionNotes)),
	}

	requestID, ok := positiveParam(r, "requestId")
	if !ok {
		p.withError(request.ErrRequestNotFound, "error.load_failed")
		h.renderer.Render(w, http.StatusNotFound, "approval", withData(p, approvalView{}))
		return
	}

	if err := h.requestService.Decide(r.Context(), requestID, form); err != nil {
		slog.Error("Decide WFH request error", "manager_id", form.ManagerID, "request_id", requestID, "error", err)
		p.withError(err, "error.request.submit_failed")
		h.renderApproval(w, r, p, pageStatus(err), approvalView{Status: form.Status, Notes: form.Notes})
		return
	}

	redirectWithMessage(w, r, pagePath(p.StaffID, "/3/pending-requests"), "flash.decision.recorded")
}

func (h *ApprovalHandlerImpl) renderApproval(w http.ResponseWriter, r *http.Request, p pageData, status int, view approvalView) {
	requestID, ok := positiveParam(r, "requestId")
	if !ok {
		p.withError(request.ErrRequestNotFound, "error.load_failed")
		h.renderer.Render(w, http.StatusNotFound, "approval", withData(p, view))
		return
	}
	view.ActionPath = pagePath(p.StaffID, "/3/approval/"+strconv.Itoa(requestID))

	detail, err := h.requestService.GetDetail(r.Context(), requestID)
	if err != nil {
		slog.Error("Get WFH request error", "request_id", requestID, "error", err)
		if p.Error == "" {
			p.withError(err, "error.load_failed")
		}
		if status == http.StatusOK {
			status = pageStatus(err)
		}
	} else {
		view.Detail = detail
		view.Loaded = true
		view.CanDecide = request.RequestLifecycle.CanFire(detail.Request.Status, request.TriggerApprove)
	}

	h.renderer.Render(w, status, "approval", withData(p, view))
}

// WithdrawalRequests implements ApprovalHandler.
func (h *ApprovalHandlerImpl) WithdrawalRequests(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.withdrawal_requests")
	status := http.StatusOK

	withdrawals, err := h.requestService.PendingWithdrawals(r.Context(), p.StaffID)
	if err != nil {
		slog.Error("List pending withdrawals error", "manager_id", p.StaffID, "error", err)
		p.withError(err, "error.load_failed")
		status = pageStatus(err)
	}

	p.Data = withdrawalRequestsView{Withdrawals: withdrawals}
	h.renderer.Render(w, status, "withdrawal_requests", p)
}

// WithdrawalApproval implements ApprovalHandler.
func (h *ApprovalHandlerImpl) WithdrawalApproval(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.withdrawal_requests")
	h.renderWithdrawalApproval(w, r, p, http.StatusOK, withdrawalApprovalView{})
}

// DecideWithdrawal implements ApprovalHandler.
func (h *ApprovalHandlerImpl) DecideWithdrawal(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "nav.withdrawal_requests")
	form := request.DecisionForm{
		ManagerID: p.StaffID,
		Status:    request.ParseStatus(r.PostFormValue(request.FieldDecisionStatus)),
		Notes:     strings.TrimSpace(r.PostFormValue(request.FieldDecisionNotes)),
	}
	view := withdrawalApprovalView{Status: form.Status, Notes: form.Notes}

	memberID, okMember := positiveParam(r, "memberId")
	withdrawalID, okWithdrawal := positiveParam(r, "withdrawalId")
	if !okMember || !okWithdrawal {
		p.withError(request.ErrWithdrawalNotFound, "error.load_failed")
		h.renderer.Render(w, http.StatusNotFound, "withdrawal_approval", withData(p, view))
		return
	}

	wd, err := h.requestService.GetWithdrawal(r.Context(), p.StaffID, memberID, withdrawalID)
	if err == nil {
		err = h.requestService.DecideWithdrawal(r.Context(), wd, form)
	}
	if err != nil {
		slog.Error("Decide withdrawal error", "manager_id", p.StaffID, "withdrawal_id", withdrawalID, "error", err)
		p.withError(err, "error.request.submit_failed")
		h.renderWithdrawalApproval(w, r, p, pageStatus(err), view)
		return
	}

	redirectWithMessage(w, r, pagePath(p.StaffID, "/3/withdrawal-requests"), "flash.decision.recorded")
}

func (h *ApprovalHandlerImpl) renderWithdrawalApproval(w http.ResponseWriter, r *http.Request, p pageData, status int, view withdrawalApprovalView) {
	memberID, okMember := positiveParam(r, "memberId")
	withdrawalID, okWithdrawal := positiveParam(r, "withdrawalId")
	if !okMember || !okWithdrawal {
		p.withError(request.ErrWithdrawalNotFound, "error.load_failed")
		h.renderer.Render(w, http.StatusNotFound, "withdrawal_approval", withData(p, view))
		return
	}
	view.ActionPath = pagePath(p.StaffID, "/3/withdrawal-approval/"+strconv.Itoa(memberID)+"/"+strconv.Itoa(withdrawalID))

	wd, err := h.requestService.GetWithdrawal(r.Context(), p.StaffID, memberID, withdrawalID)
	if err != nil {
		slog.Error("Get withdrawal error", "manager_id", p.StaffID, "withdrawal_id", withdrawalID, "error", err)
		if p.Error == "" {
			p.withError(err, "error.load_failed")
		}
		if status == http.StatusOK {
			status = pageStatus(err)
		}
	} else {
		view.Withdrawal = wd
		view.Loaded = true
		view.CanDecide = request.WithdrawalLifecycle.CanFire(wd.Status, request.TriggerApprove)
	}

	h.renderer.Render(w, status, "withdrawal_approval", withData(p, view))
}

func positiveParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func withData(p pageData, data any) pageData {
	p.Data = data
	return p
}
