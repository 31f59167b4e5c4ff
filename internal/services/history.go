package services

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/storage"

	"github.com/google/uuid"
)

// HistoryService owns the append-only list of saved snapshots. Records are
// never mutated in place; duplicate and delete rebuild the stored array.
type HistoryService struct {
	Store *storage.Store
	Inv   *InvoiceService
}

func NewHistoryService(store *storage.Store, inv *InvoiceService) *HistoryService {
	return &HistoryService{Store: store, Inv: inv}
}

// Summary is the dashboard aggregate: current-month invoice totals per
// currency, quote count, and the most recent records.
type Summary struct {
	MonthTotals map[string]float64   `json:"monthTotals"`
	QuoteCount  int                  `json:"quoteCount"`
	Recent      []models.HistoryMeta `json:"recent"`
}

// records loads the full list. Malformed stored JSON degrades to an empty
// list; no partial recovery is attempted.
func (h *HistoryService) records() []models.HistoryRecord {
	raw, ok := h.Store.Get(storage.HistoryKey)
	if !ok {
		return nil
	}
	var recs []models.HistoryRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil
	}
	return recs
}

func (h *HistoryService) persist(recs []models.HistoryRecord) {
	raw, err := json.Marshal(recs)
	if err != nil {
		return
	}
	_ = h.Store.Put(storage.HistoryKey, string(raw))
}

// List returns summary metas sorted newest-created first.
func (h *HistoryService) List() []models.HistoryMeta {
	recs := h.records()
	metas := make([]models.HistoryMeta, 0, len(recs))
	for _, r := range recs {
		metas = append(metas, r.Meta)
	}
	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].CreatedAt.After(metas[j].CreatedAt)
	})
	return metas
}

// Get returns the record with the given id.
func (h *HistoryService) Get(id string) (models.HistoryRecord, bool) {
	for _, r := range h.records() {
		if r.Meta.ID == id {
			return r, true
		}
	}
	return models.HistoryRecord{}, false
}

// SaveDraft appends a snapshot of d with freshly computed meta and returns
// the new record. docType falls back to invoice.
func (h *HistoryService) SaveDraft(d models.InvoiceDraft, docType string) models.HistoryRecord {
	if docType != models.DocumentQuote {
		docType = models.DocumentInvoice
	}
	totals := h.Inv.ComputeTotals(&d)
	rec := models.HistoryRecord{
		Meta: models.HistoryMeta{
			ID:            uuid.NewString(),
			CreatedAt:     time.Now(),
			ClientName:    firstLine(d.To),
			InvoiceNumber: d.InvoiceNumber,
			Total:         totals.Total,
			Currency:      d.Currency,
			DocumentType:  docType,
		},
		Data: d,
	}
	h.persist(append(h.records(), rec))
	return rec
}

// Duplicate copies the record with the given id under a new id and
// timestamp, suffixing the invoice number with "(copy)". A missing id is a
// silent no-op.
func (h *HistoryService) Duplicate(id string) (models.HistoryRecord, bool) {
	recs := h.records()
	for _, r := range recs {
		if r.Meta.ID != id {
			continue
		}
		dup := r
		dup.Meta.ID = uuid.NewString()
		dup.Meta.CreatedAt = time.Now()
		dup.Meta.InvoiceNumber = r.Meta.InvoiceNumber + " (copy)"
		dup.Data.InvoiceNumber = r.Data.InvoiceNumber + " (copy)"
		h.persist(append(recs, dup))
		return dup, true
	}
	return models.HistoryRecord{}, false
}

// Delete removes exactly the record with the given id, leaving the others'
// order and content unchanged. A missing id is a silent no-op.
func (h *HistoryService) Delete(id string) {
	recs := h.records()
	kept := recs[:0]
	for _, r := range recs {
		if r.Meta.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		return
	}
	h.persist(kept)
}

// Summarize aggregates the dashboard view of the history.
func (h *HistoryService) Summarize(now time.Time) Summary {
	sum := Summary{MonthTotals: map[string]float64{}}
	metas := h.List()
	for _, m := range metas {
		if m.DocumentType == models.DocumentQuote {
			sum.QuoteCount++
			continue
		}
		if m.CreatedAt.Year() == now.Year() && m.CreatedAt.Month() == now.Month() {
			sum.MonthTotals[m.Currency] += m.Total
		}
	}
	if len(metas) > 5 {
		metas = metas[:5]
	}
	sum.Recent = metas
	return sum
}

// firstLine extracts the client name from a free-text To block.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
