package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flashinvoice/flashinvoice/internal/httpx"
	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/services"
)

// DraftHandler serves the editor's load/save cycle.
type DraftHandler struct {
	Drafts *services.DraftService
}

func NewDraftHandler(drafts *services.DraftService) *DraftHandler {
	return &DraftHandler{Drafts: drafts}
}

// Get: GET /draft?history=<id>&convert=1 — resolve the live draft.
// The history/convert parameters replace the old one-shot storage pointers:
// opening a record (or converting a quote) is an explicit request, not a
// flag that must be remembered to be cleared.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	opts := services.LoadOptions{
		HistoryID: r.URL.Query().Get("history"),
		Convert:   r.URL.Query().Get("convert") == "1",
	}
	httpx.JSON(w, http.StatusOK, h.Drafts.Load(opts))
}

// Put: PUT /draft — autosave the full draft. The body is the complete
// InvoiceDraft; the previous slot value is overwritten, no merge.
func (h *DraftHandler) Put(w http.ResponseWriter, r *http.Request) {
	var d models.InvoiceDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.Drafts.Save(d))
}
