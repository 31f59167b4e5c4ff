package handlers

import (
	"net/http"

	"github.com/flashinvoice/flashinvoice/internal/httpx"
	"github.com/flashinvoice/flashinvoice/internal/services"
)

// PrefsHandler exposes the two UI toggles.
type PrefsHandler struct {
	Prefs *services.PrefsService
}

func NewPrefsHandler(prefs *services.PrefsService) *PrefsHandler {
	return &PrefsHandler{Prefs: prefs}
}

// Get: GET /prefs
func (h *PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Prefs.Get())
}

// ToggleLanguage: POST /prefs/language — en<->fr.
func (h *PrefsHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"language": h.Prefs.ToggleLanguage()})
}

// ToggleTheme: POST /prefs/theme — dark<->light.
func (h *PrefsHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"theme": h.Prefs.ToggleTheme()})
}
