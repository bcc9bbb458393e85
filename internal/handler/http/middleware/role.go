package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/wfh-web/internal/domain/staff"
	"github.com/cmlabs-hris/wfh-web/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type resolutionKey struct{}

// StaffIDParam is the route parameter holding the staff id.
const StaffIDParam = "staffId"

// ResolveRole looks up the role of the staff id in the path. A path without
// a usable staff id is sent to the login page. A failed lookup is recorded
// in the context rather than aborting, so pages can still render the shell.
func ResolveRole(repo staff.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID, err := staff.ParseStaffID(chi.URLParam(r, StaffIDParam))
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			res := staff.Pending(staffID)
			role, err := repo.GetRole(r.Context(), staffID)
			switch {
			case err != nil:
				slog.Error("resolve role error", "staff_id", staffID, "error", err)
				res = staff.FailedWith(staffID, err)
			case !role.IsValid():
				res = staff.FailedWith(staffID, staff.ErrUnknownRole)
			default:
				res = staff.ResolvedAs(staffID, role)
			}

			ctx := WithResolution(r.Context(), res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithResolution(ctx context.Context, res staff.RoleResolution) context.Context {
	return context.WithValue(ctx, resolutionKey{}, res)
}

// ResolutionFromContext returns the role resolution for the request. Without
// one the result is an unresolved lookup that grants nothing.
func ResolutionFromContext(ctx context.Context) staff.RoleResolution {
	if res, ok := ctx.Value(resolutionKey{}).(staff.RoleResolution); ok {
		return res
	}
	return staff.RoleResolution{State: staff.Loading}
}

// RequirePermission redirects to the staff member's home page unless the
// resolved role grants permission. The wrapped handler is never reached on
// a redirect.
func RequirePermission(permission staff.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := ResolutionFromContext(r.Context())
			if !res.Allows(permission) {
				slog.Debug("route not permitted", "staff_id", res.StaffID, "permission", permission, "role", res.Role)
				http.Redirect(w, r, HomePath(res.StaffID), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireGridPermission is RequirePermission for JSON routes: it answers
// with an error body instead of a redirect.
func RequireGridPermission(permission staff.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := ResolutionFromContext(r.Context())
			if !res.Allows(permission) {
				err := staff.ErrPermissionDenied
				if res.State == staff.Failed && res.Err != nil {
					err = res.Err
				}
				slog.Debug("grid not permitted", "staff_id", res.StaffID, "permission", permission, "error", err)
				response.HandleError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HomePath is the landing page of a staff member.
func HomePath(staffID int) string {
	if staffID <= 0 {
		return "/login"
	}
	return "/" + strconv.Itoa(staffID)
}
