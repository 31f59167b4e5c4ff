package services

import (
	"encoding/json"

	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/storage"
)

// DraftService resolves and autosaves the single live draft.
type DraftService struct {
	Store    *storage.Store
	Inv      *InvoiceService
	Settings *SettingsService
	History  *HistoryService
}

func NewDraftService(store *storage.Store, inv *InvoiceService, settings *SettingsService, history *HistoryService) *DraftService {
	return &DraftService{Store: store, Inv: inv, Settings: settings, History: history}
}

// LoadOptions selects the draft source. HistoryID replaces the old one-shot
// "selected invoice" storage pointer: the caller passes it explicitly per
// request and nothing has to be cleared afterwards. Convert marks a
// quote-to-invoice open.
type LoadOptions struct {
	HistoryID string
	Convert   bool
}

// LoadResult is the resolved draft plus its derived totals and document type.
type LoadResult struct {
	Draft        models.InvoiceDraft `json:"draft"`
	Totals       models.Totals       `json:"totals"`
	DocumentType string              `json:"documentType"`
}

// draftFile shadows models.InvoiceDraft with pointer fields so settings
// defaults only overlay fields genuinely absent from the stored source.
type draftFile struct {
	From          *string           `json:"from"`
	To            *string           `json:"to"`
	InvoiceNumber *string           `json:"invoiceNumber"`
	IssueDate     *string           `json:"issueDate"`
	DueDate       *string           `json:"dueDate"`
	Currency      *string           `json:"currency"`
	Notes         *string           `json:"notes"`
	TaxRate       *float64          `json:"taxRate"`
	Items         []models.LineItem `json:"items"`
}

// Load resolves the live draft: explicit history record, then the autosaved
// slot, then a blank draft. At each level the settings defaults fill absent
// fields. A loaded invoice number is preserved as-is.
func (s *DraftService) Load(opts LoadOptions) LoadResult {
	defaults := s.Settings.Get()

	if opts.HistoryID != "" {
		if rec, ok := s.History.Get(opts.HistoryID); ok {
			docType := rec.Meta.DocumentType
			if opts.Convert {
				docType = models.DocumentInvoice
			}
			d := rec.Data
			s.overlay(&d, defaults)
			s.Inv.Normalize(&d)
			return LoadResult{Draft: d, Totals: s.Inv.ComputeTotals(&d), DocumentType: docType}
		}
		// unknown id falls through to the autosaved draft
	}

	if raw, ok := s.Store.Get(storage.DraftKey); ok {
		if d, ok := decodeDraft(raw, defaults); ok {
			s.Inv.Normalize(&d)
			return LoadResult{Draft: d, Totals: s.Inv.ComputeTotals(&d), DocumentType: models.DocumentInvoice}
		}
	}

	d := s.blank(defaults)
	return LoadResult{Draft: d, Totals: s.Inv.ComputeTotals(&d), DocumentType: models.DocumentInvoice}
}

// Save autosaves the full draft, overwriting the slot. The write failure
// mode is silent: the caller's in-memory mutation has already succeeded.
// Returns the normalized draft and its recomputed totals.
func (s *DraftService) Save(d models.InvoiceDraft) LoadResult {
	s.Inv.Normalize(&d)
	if raw, err := json.Marshal(d); err == nil {
		_ = s.Store.Put(storage.DraftKey, string(raw))
	}
	return LoadResult{Draft: d, Totals: s.Inv.ComputeTotals(&d), DocumentType: models.DocumentInvoice}
}

// blank builds the built-in blank draft pre-filled from settings.
func (s *DraftService) blank(defaults models.Settings) models.InvoiceDraft {
	d := models.InvoiceDraft{
		From:     defaults.BusinessInfo,
		Currency: defaults.DefaultCurrency,
		TaxRate:  defaults.DefaultTaxRate,
		Items:    []models.LineItem{s.Inv.NewBlankItem()},
	}
	return d
}

// overlay fills empty string fields from settings. Loaded records keep their
// own tax rate and currency when set; only a blank From is seeded.
func (s *DraftService) overlay(d *models.InvoiceDraft, defaults models.Settings) {
	if d.From == "" {
		d.From = defaults.BusinessInfo
	}
	if d.Currency == "" {
		d.Currency = defaults.DefaultCurrency
	}
}

// decodeDraft parses an autosaved draft, overlaying settings defaults for
// absent fields. Corrupt JSON reports false so the caller falls back.
func decodeDraft(raw string, defaults models.Settings) (models.InvoiceDraft, bool) {
	var f draftFile
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return models.InvoiceDraft{}, false
	}
	d := models.InvoiceDraft{
		From:     defaults.BusinessInfo,
		Currency: defaults.DefaultCurrency,
		TaxRate:  defaults.DefaultTaxRate,
	}
	if f.From != nil {
		d.From = *f.From
	}
	if f.To != nil {
		d.To = *f.To
	}
	if f.InvoiceNumber != nil {
		d.InvoiceNumber = *f.InvoiceNumber
	}
	if f.IssueDate != nil {
		d.IssueDate = *f.IssueDate
	}
	if f.DueDate != nil {
		d.DueDate = *f.DueDate
	}
	if f.Currency != nil {
		d.Currency = *f.Currency
	}
	if f.Notes != nil {
		d.Notes = *f.Notes
	}
	if f.TaxRate != nil {
		d.TaxRate = *f.TaxRate
	}
	d.Items = f.Items
	return d, true
}
