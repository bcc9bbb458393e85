package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/handler/http/middleware"
	"github.com/cmlabs-hris/wfh-web/internal/pkg/jwt"
)

type AuthHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	LoginPage(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService jwt.Service
	staffRepo  staff.Repository
	renderer   *Renderer
}

type loginView struct {
	StaffID string
}

func NewAuthHandler(jwtService jwt.Service, staffRepo staff.Repository, renderer *Renderer) AuthHandler {
	return &AuthHandlerImpl{
		jwtService: jwtService,
		staffRepo:  staffRepo,
		renderer:   renderer,
	}
}

// Root implements AuthHandler.
func (a *AuthHandlerImpl) Root(w http.ResponseWriter, r *http.Request) {
	if staffID, ok := middleware.SessionStaffID(r.Context()); ok {
		http.Redirect(w, r, middleware.HomePath(staffID), http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginPage implements AuthHandler.
func (a *AuthHandlerImpl) LoginPage(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "login.title")
	p.Data = loginView{}
	a.renderer.Render(w, http.StatusOK, "login", p)
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	p := newPage(r, "login.title")
	raw := r.PostFormValue("staff_id")
	p.Data = loginView{StaffID: raw}

	staffID, err := staff.ParseStaffID(raw)
	if err != nil {
		p.FieldErrors["staff_id"] = p.T("validation.staff_id.invalid")
		a.renderer.Render(w, http.StatusUnprocessableEntity, "login", p)
		return
	}

	role, err := a.staffRepo.GetRole(r.Context(), staffID)
	if err != nil || !role.IsValid() {
		if err == nil || errors.Is(err, staff.ErrStaffNotFound) || errors.Is(err, staff.ErrUnknownRole) {
			p.FieldErrors["staff_id"] = p.T("validation.staff_id.invalid")
			a.renderer.Render(w, http.StatusUnprocessableEntity, "login", p)
			return
		}
		slog.Error("Login role lookup error", "staff_id", staffID, "error", err)
		p.Error = userMessage(r.Context(), err, "error.role.failed")
		a.renderer.Render(w, http.StatusBadGateway, "login", p)
		return
	}

	token, expiresAt, err := a.jwtService.IssueSession(staffID)
	if err != nil {
		slog.Error("Login issue session error", "error", err)
		p.Error = p.T("error.load_failed")
		a.renderer.Render(w, http.StatusInternalServerError, "login", p)
		return
	}

	http.SetCookie(w, a.jwtService.SessionCookie(token, expiresAt))
	http.Redirect(w, r, middleware.HomePath(staffID), http.StatusSeeOther)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if token := jwt.TokenFromSessionCookie(r); token != "" {
		a.jwtService.RevokeToken(token)
	}
	http.SetCookie(w, a.jwtService.ClearSessionCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
