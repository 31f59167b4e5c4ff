package server

import (
	"net/http"
	"time"

	"github.com/flashinvoice/flashinvoice/internal/handlers"
	"github.com/flashinvoice/flashinvoice/internal/httpx"
	"github.com/flashinvoice/flashinvoice/internal/middleware"
	"github.com/flashinvoice/flashinvoice/internal/services"
	"github.com/flashinvoice/flashinvoice/internal/storage"

	"go.uber.org/zap"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Services share the one store; there is exactly one writer (the
// active session), so no extra coordination is layered on top.
func New(store *storage.Store, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	inv := services.NewInvoiceService()
	settingsSvc := services.NewSettingsService(store)
	historySvc := services.NewHistoryService(store, inv)
	draftSvc := services.NewDraftService(store, inv, settingsSvc, historySvc)
	prefsSvc := services.NewPrefsService(store)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := store.DB().Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Draft (editor load/save + export)
	dh := handlers.NewDraftHandler(draftSvc)
	eh := handlers.NewExportHandler(draftSvc, settingsSvc)
	mux.HandleFunc("/draft", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dh.Get(w, r)
		case http.MethodPut:
			dh.Put(w, r)
		default:
			w.Header().Set("Allow", "GET,PUT")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/draft/pdf", requireMethod(http.MethodGet, eh.PDF))

	// History (list/save plus action paths for duplicate/delete)
	hh := handlers.NewHistoryHandler(historySvc, draftSvc)
	mux.HandleFunc("/history", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			hh.List(w, r)
		case http.MethodPost:
			hh.Save(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/history/duplicate", requireMethod(http.MethodPost, hh.Duplicate))
	mux.HandleFunc("/history/delete", requireMethod(http.MethodPost, hh.Delete))
	mux.HandleFunc("/summary", requireMethod(http.MethodGet, hh.Summary))

	// Settings
	sh := handlers.NewSettingsHandler(settingsSvc)
	mux.HandleFunc("/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.Get(w, r)
		case http.MethodPut:
			sh.Put(w, r)
		default:
			w.Header().Set("Allow", "GET,PUT")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/settings/logo", requireMethod(http.MethodPost, sh.UploadLogo))
	mux.HandleFunc("/settings/logo/delete", requireMethod(http.MethodPost, sh.DeleteLogo))

	// UI preferences
	ph := handlers.NewPrefsHandler(prefsSvc)
	mux.HandleFunc("/prefs", requireMethod(http.MethodGet, ph.Get))
	mux.HandleFunc("/prefs/language", requireMethod(http.MethodPost, ph.ToggleLanguage))
	mux.HandleFunc("/prefs/theme", requireMethod(http.MethodPost, ph.ToggleTheme))

	return middleware.Prefs(prefsSvc)(withRecover(log, withLogging(log, mux)))
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}

func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)),
		)
	})
}

func withRecover(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
