package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/flashinvoice/flashinvoice/internal/httpx"
	"github.com/flashinvoice/flashinvoice/internal/middleware"
	"github.com/flashinvoice/flashinvoice/internal/pdf"
	"github.com/flashinvoice/flashinvoice/internal/services"
)

// ExportHandler renders the draft (or a history record) to a PDF download.
type ExportHandler struct {
	Drafts   *services.DraftService
	Settings *services.SettingsService
}

func NewExportHandler(drafts *services.DraftService, settings *services.SettingsService) *ExportHandler {
	return &ExportHandler{Drafts: drafts, Settings: settings}
}

// PDF: GET /draft/pdf?history=<id> — one-shot synchronous export, named
// after the invoice number (generic name when blank). Labels follow the
// request's resolved language.
func (h *ExportHandler) PDF(w http.ResponseWriter, r *http.Request) {
	res := h.Drafts.Load(services.LoadOptions{
		HistoryID: r.URL.Query().Get("history"),
	})
	doc := pdf.Document{
		Draft:        res.Draft,
		Totals:       res.Totals,
		DocumentType: res.DocumentType,
		Language:     middleware.LangFrom(r),
		LogoDataURL:  h.Settings.Get().LogoDataURL,
	}
	out, err := pdf.Build(doc)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	filename := pdf.Filename(res.Draft.InvoiceNumber)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	_, _ = w.Write(out)
}
