package services

import (
	"github.com/flashinvoice/flashinvoice/internal/models"

	"github.com/google/uuid"
)

// InvoiceService encapsulates draft arithmetic and line-item rules.
// Stateless; totals are recomputed from scratch on every call.
type InvoiceService struct{}

func NewInvoiceService() *InvoiceService { return &InvoiceService{} }

// LineTotal is quantity × unit price. Negative inputs are accepted and flow
// through unchanged.
func (s *InvoiceService) LineTotal(it models.LineItem) float64 {
	return it.Quantity * it.UnitPrice
}

// ComputeTotals computes subtotal, tax amount, and total for a draft.
// taxAmount = subtotal × rate/100; no rounding here, formatting is display-time.
func (s *InvoiceService) ComputeTotals(d *models.InvoiceDraft) models.Totals {
	if d == nil {
		return models.Totals{}
	}
	var subtotal float64
	for _, it := range d.Items {
		subtotal += s.LineTotal(it)
	}
	tax := subtotal * d.TaxRate / 100
	return models.Totals{Subtotal: subtotal, TaxAmount: tax, Total: subtotal + tax}
}

// NewBlankItem returns a fresh line item: empty description, quantity 1,
// price 0.
func (s *InvoiceService) NewBlankItem() models.LineItem {
	return models.LineItem{ID: uuid.NewString(), Quantity: 1}
}

// Normalize repairs a draft after decode: items never empty, every item has
// an id, unknown currency falls back to EUR. Field values themselves are
// kept as-is (including negatives).
func (s *InvoiceService) Normalize(d *models.InvoiceDraft) {
	if len(d.Items) == 0 {
		d.Items = []models.LineItem{s.NewBlankItem()}
	}
	for i := range d.Items {
		if d.Items[i].ID == "" {
			d.Items[i].ID = uuid.NewString()
		}
	}
	if !models.ValidCurrency(d.Currency) {
		d.Currency = models.CurrencyEUR
	}
}

// AddItem appends a blank line and returns it.
func (s *InvoiceService) AddItem(d *models.InvoiceDraft) models.LineItem {
	it := s.NewBlankItem()
	d.Items = append(d.Items, it)
	return it
}

// RemoveItem deletes the line with the given id. Removing the sole remaining
// item leaves exactly one fresh blank item; an unknown id is a no-op.
func (s *InvoiceService) RemoveItem(d *models.InvoiceDraft, id string) {
	kept := d.Items[:0]
	for _, it := range d.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	d.Items = kept
	if len(d.Items) == 0 {
		d.Items = []models.LineItem{s.NewBlankItem()}
	}
}
