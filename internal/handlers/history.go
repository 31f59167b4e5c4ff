package handlers

import (
	"net/http"
	"time"

	"github.com/flashinvoice/flashinvoice/internal/httpx"
	"github.com/flashinvoice/flashinvoice/internal/services"
)

// HistoryHandler serves list/save/duplicate/delete over saved snapshots.
type HistoryHandler struct {
	History *services.HistoryService
	Drafts  *services.DraftService
}

func NewHistoryHandler(history *services.HistoryService, drafts *services.DraftService) *HistoryHandler {
	return &HistoryHandler{History: history, Drafts: drafts}
}

// List: GET /history — summary metas, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	metas := h.History.List()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": metas, "total": len(metas)})
}

// Save: POST /history?type=quote — snapshot the current live draft into a
// new record. Existing records are never touched.
func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	cur := h.Drafts.Load(services.LoadOptions{})
	rec := h.History.SaveDraft(cur.Draft, r.URL.Query().Get("type"))
	httpx.JSON(w, http.StatusCreated, rec.Meta)
}

// Duplicate: POST /history/duplicate?id= — copy under a new id/timestamp
// with the number suffixed "(copy)". Missing id silently no-ops.
func (h *HistoryHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if rec, ok := h.History.Duplicate(id); ok {
		httpx.JSON(w, http.StatusCreated, rec.Meta)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete: POST /history/delete?id= — remove exactly that record; no
// confirmation, no undo.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.History.Delete(r.URL.Query().Get("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Summary: GET /summary — dashboard aggregate (month totals, quote count,
// recent records).
func (h *HistoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.History.Summarize(time.Now()))
}
