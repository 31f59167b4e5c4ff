package models

// Invoice drafting models. JSON tags mirror the persisted slot shapes and
// must round-trip exactly, so they stay camelCase.

// Supported currency codes for drafts and settings.
const (
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
)

// ValidCurrency reports whether code is one of the supported currencies.
func ValidCurrency(code string) bool {
	return code == CurrencyEUR || code == CurrencyUSD || code == CurrencyGBP
}

// LineItem is one billable row of a draft.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// InvoiceDraft is the single currently-edited invoice. From/To are free text
// blocks (multi-line); dates are kept as entered (YYYY-MM-DD strings).
type InvoiceDraft struct {
	From          string     `json:"from"`
	To            string     `json:"to"`
	InvoiceNumber string     `json:"invoiceNumber"`
	IssueDate     string     `json:"issueDate"`
	DueDate       string     `json:"dueDate"`
	Currency      string     `json:"currency"`
	Notes         string     `json:"notes"`
	TaxRate       float64    `json:"taxRate"`
	Items         []LineItem `json:"items"`
}

// Totals is the derived subtotal/tax/total triple for a draft.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}
