package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/wfh-web/internal/pkg/i18n"
)

// Locale picks the UI language from ?lang= or Accept-Language.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Accept-Language")
		if lang := r.URL.Query().Get("lang"); lang != "" {
			header = lang
		}
		ctx := i18n.WithLocale(r.Context(), i18n.MatchAcceptLanguage(header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
