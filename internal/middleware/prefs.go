package middleware

import (
	"context"
	"net/http"

	"github.com/flashinvoice/flashinvoice/internal/i18n"
	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/services"
)

type ctxKey string

const (
	ctxLang  ctxKey = "pref_lang"
	ctxTheme ctxKey = "pref_theme"
)

// Prefs resolves language/theme for the request (query > stored preference >
// Accept-Language) and stores them in context. Query-provided values are
// persisted through the injected preferences service, so the resolution has
// no package-level state of its own.
func Prefs(prefs *services.PrefsService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, stored := prefs.StoredLanguage()
			if !stored {
				lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
			}
			if ql := r.URL.Query().Get("lang"); models.ValidLanguage(ql) {
				lang = prefs.SetLanguage(ql)
			}

			theme := prefs.Theme()
			if qt := r.URL.Query().Get("theme"); models.ValidTheme(qt) {
				theme = prefs.SetTheme(qt)
			}

			ctx := context.WithValue(r.Context(), ctxLang, lang)
			ctx = context.WithValue(ctx, ctxTheme, theme)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LangFrom returns the language preference from context or the default.
func LangFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxLang).(string); ok && v != "" {
		return v
	}
	return models.LangEN
}

// ThemeFrom returns the theme preference from context or the default.
func ThemeFrom(r *http.Request) string {
	if v, ok := r.Context().Value(ctxTheme).(string); ok && v != "" {
		return v
	}
	return models.ThemeDark
}
