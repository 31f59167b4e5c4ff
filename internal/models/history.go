package models

import "time"

// Document types carried through history records.
const (
	DocumentInvoice = "invoice"
	DocumentQuote   = "quote"
)

// HistoryMeta is the summary shown in listings; ClientName is the first line
// of the draft's To block at save time.
type HistoryMeta struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	ClientName    string    `json:"clientName"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	DocumentType  string    `json:"documentType"`
}

// HistoryRecord is an immutable-once-saved snapshot of a draft plus its meta.
type HistoryRecord struct {
	Meta HistoryMeta  `json:"meta"`
	Data InvoiceDraft `json:"data"`
}
