package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type sessionKey struct{}

// Session reads the session cookie verified by jwtauth.Verify and stores the
// signed-in staff id in the context. Requests without a valid session pass
// through unchanged.
func Session(svc jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}

			if svc.IsTokenRevoked(jwt.TokenFromSessionCookie(r)) {
				next.ServeHTTP(w, r)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "session" || !ok {
				next.ServeHTTP(w, r)
				return
			}

			idStr, _ := claims["staff_id"].(string)
			staffID, err := strconv.Atoi(idStr)
			if err != nil || staffID <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, staffID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionStaffID returns the signed-in staff id, if any.
func SessionStaffID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(sessionKey{}).(int)
	return id, ok && id > 0
}
