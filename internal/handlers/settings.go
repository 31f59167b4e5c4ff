package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/flashinvoice/flashinvoice/internal/httpx"
	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/services"
)

// maxLogoBytes caps logo uploads; the original relied on the file picker's
// filter only, but a server has to bound the multipart read somewhere.
const maxLogoBytes = 5 << 20

// SettingsHandler serves the defaults record and logo upload.
type SettingsHandler struct {
	Settings *services.SettingsService
}

func NewSettingsHandler(settings *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

// Get: GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Settings.Get())
}

// Put: PUT /settings — overwrite the defaults record (autosave semantics).
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var in models.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.Settings.Update(in))
}

// UploadLogo: POST /settings/logo — multipart "logo" file, stored embedded
// as a data URL. Only png/jpeg are accepted.
func (h *SettingsHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_multipart", nil)
		return
	}
	file, _, err := r.FormFile("logo")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "missing_logo_file", nil)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxLogoBytes))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "unreadable_logo_file", nil)
		return
	}
	mime := http.DetectContentType(raw)
	if mime != "image/png" && mime != "image/jpeg" {
		httpx.JSONError(w, http.StatusBadRequest, "unsupported_image_type", map[string]string{"detected": mime})
		return
	}
	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw)
	httpx.JSON(w, http.StatusOK, h.Settings.SetLogo(dataURL))
}

// DeleteLogo: POST /settings/logo/delete — clear the embedded logo.
func (h *SettingsHandler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.Settings.ClearLogo())
}
