package pdf

import (
	"bytes"
	"math"
	"testing"

	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

func TestBuildProducesPDF(t *testing.T) {
	doc := Document{
		Draft: models.InvoiceDraft{
			From:          "Me Inc\n1 rue de la Paix",
			To:            "Acme Studio",
			InvoiceNumber: "INV-0001",
			IssueDate:     "2026-08-01",
			DueDate:       "2026-08-31",
			Currency:      "EUR",
			Notes:         "Payment within 30 days",
			TaxRate:       20,
			Items: []models.LineItem{
				{ID: "a", Description: "Landing page design", Quantity: 1, UnitPrice: 900},
			},
		},
		Totals:       models.Totals{Subtotal: 900, TaxAmount: 180, Total: 1080},
		DocumentType: models.DocumentInvoice,
		Language:     "en",
	}
	out, err := Build(doc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF magic, got %q", out[:min(8, len(out))])
	}
}

func TestBuildOverflowedTotals(t *testing.T) {
	// quantity × price past float64 range must still render a document
	doc := Document{
		Draft: models.InvoiceDraft{
			Currency: "EUR",
			TaxRate:  20,
			Items:    []models.LineItem{{ID: "a", Quantity: 1e308, UnitPrice: 10}},
		},
		Totals:       models.Totals{Subtotal: math.Inf(1), TaxAmount: math.Inf(1), Total: math.Inf(1)},
		DocumentType: models.DocumentInvoice,
		Language:     "en",
	}
	out, err := Build(doc)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("expected PDF output")
	}
}

func TestBuildFrenchLabels(t *testing.T) {
	doc := Document{
		Draft:        models.InvoiceDraft{Currency: "EUR", Items: []models.LineItem{{ID: "a"}}},
		DocumentType: models.DocumentQuote,
		Language:     "fr",
	}
	if _, err := Build(doc); err != nil {
		t.Fatalf("build fr quote: %v", err)
	}
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"INV-0001":     "INV-0001.pdf",
		"":             "invoice.pdf",
		"   ":          "invoice.pdf",
		"a/b\\c":       "abc.pdf",
		"INV 1 (copy)": "INV 1 (copy).pdf",
	}
	for in, want := range cases {
		if got := Filename(in); got != want {
			t.Fatalf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw, ext, ok := decodeDataURL("data:image/png;base64,aGVsbG8=")
	if !ok || ext != extension.Png || string(raw) != "hello" {
		t.Fatalf("png decode failed: ok=%v ext=%v raw=%q", ok, ext, raw)
	}
	if _, ext, ok := decodeDataURL("data:image/jpeg;base64,aGVsbG8="); !ok || ext != extension.Jpg {
		t.Fatalf("jpeg decode failed")
	}
	for _, bad := range []string{
		"",
		"not a data url",
		"data:image/gif;base64,aGVsbG8=",
		"data:image/png;base64,%%%",
		"data:image/png,plain",
	} {
		if _, _, ok := decodeDataURL(bad); ok {
			t.Fatalf("expected rejection of %q", bad)
		}
	}
}
