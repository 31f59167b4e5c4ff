package pdf

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/flashinvoice/flashinvoice/internal/i18n"
	"github.com/flashinvoice/flashinvoice/internal/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Document is everything the renderer needs for one export.
type Document struct {
	Draft        models.InvoiceDraft
	Totals       models.Totals
	DocumentType string // invoice or quote
	Language     string // en or fr
	LogoDataURL  string // optional embedded logo from settings
}

// Build renders the document into single-page A4 PDF bytes.
func Build(doc Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithBottomMargin(15).
		Build()

	m := maroto.New(cfg)
	lang := doc.Language

	// Logo (when the settings carry one and it decodes)
	if logoBytes, ext, ok := decodeDataURL(doc.LogoDataURL); ok {
		m.AddRow(22,
			col.New(4).Add(
				image.NewFromBytes(logoBytes, ext, props.Rect{Percent: 100}),
			),
		)
		m.AddRow(3)
	}

	// Title: "Invoice INV-0001" / "Quote ..."
	title := i18n.T(lang, doc.DocumentType)
	if doc.Draft.InvoiceNumber != "" {
		title += " " + doc.Draft.InvoiceNumber
	}
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(3)

	// From / Bill to blocks side by side
	fromLines := splitBlock(doc.Draft.From)
	toLines := splitBlock(doc.Draft.To)
	m.AddRow(6,
		text.NewCol(6, i18n.T(lang, "from"), props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(6, i18n.T(lang, "billTo"), props.Text{Size: 9, Style: fontstyle.Bold}),
	)
	for i := 0; i < len(fromLines) || i < len(toLines); i++ {
		var left, right string
		if i < len(fromLines) {
			left = fromLines[i]
		}
		if i < len(toLines) {
			right = toLines[i]
		}
		m.AddRow(5,
			text.NewCol(6, left, props.Text{Size: 9}),
			text.NewCol(6, right, props.Text{Size: 9}),
		)
	}
	m.AddRow(3)

	// Dates
	if doc.Draft.IssueDate != "" {
		m.AddRow(5,
			text.NewCol(3, i18n.T(lang, "issueDate")+":", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(9, doc.Draft.IssueDate, props.Text{Size: 9}),
		)
	}
	if doc.Draft.DueDate != "" {
		m.AddRow(5,
			text.NewCol(3, i18n.T(lang, "dueDate")+":", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(9, doc.Draft.DueDate, props.Text{Size: 9}),
		)
	}
	m.AddRow(4)

	// Items table
	m.AddRow(7,
		text.NewCol(6, i18n.T(lang, "description"), props.Text{Size: 9, Style: fontstyle.Bold}),
		text.NewCol(2, i18n.T(lang, "quantity"), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, i18n.T(lang, "unitPrice"), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, i18n.T(lang, "lineTotal"), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(2, line.NewCol(12))
	cur := doc.Draft.Currency
	for _, it := range doc.Draft.Items {
		m.AddRow(6,
			text.NewCol(6, it.Description, props.Text{Size: 9}),
			text.NewCol(2, trimNumber(it.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatMoney(it.UnitPrice, cur), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, FormatMoney(it.Quantity*it.UnitPrice, cur), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(2, line.NewCol(12))

	// Totals block
	m.AddRow(6,
		text.NewCol(10, i18n.T(lang, "subtotal"), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, FormatMoney(doc.Totals.Subtotal, cur), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(10, fmt.Sprintf("%s (%s%%)", i18n.T(lang, "tax"), trimNumber(doc.Draft.TaxRate)), props.Text{Size: 9, Align: align.Right}),
		text.NewCol(2, FormatMoney(doc.Totals.TaxAmount, cur), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(10, i18n.T(lang, "total"), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, FormatMoney(doc.Totals.Total, cur), props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	// Notes
	if doc.Draft.Notes != "" {
		m.AddRow(4)
		m.AddRow(6,
			text.NewCol(12, i18n.T(lang, "notes"), props.Text{Size: 9, Style: fontstyle.Bold}),
		)
		for _, l := range splitBlock(doc.Draft.Notes) {
			m.AddRow(5, text.NewCol(12, l, props.Text{Size: 9}))
		}
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return generated.GetBytes(), nil
}

// Filename derives the download name from the invoice number, falling back
// to a generic name when blank. Path-hostile characters are stripped.
func Filename(invoiceNumber string) string {
	name := strings.TrimSpace(invoiceNumber)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
	if name == "" {
		return "invoice.pdf"
	}
	return name + ".pdf"
}

// decodeDataURL extracts image bytes and their type from a data URL.
// Only png and jpeg survive; anything else skips the logo silently.
func decodeDataURL(dataURL string) ([]byte, extension.Type, bool) {
	if dataURL == "" {
		return nil, "", false
	}
	rest, found := strings.CutPrefix(dataURL, "data:")
	if !found {
		return nil, "", false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}
	var ext extension.Type
	switch strings.TrimSuffix(meta, ";base64") {
	case "image/png":
		ext = extension.Png
	case "image/jpeg", "image/jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return raw, ext, true
}

// splitBlock turns a free-text block into trimmed lines for row rendering.
func splitBlock(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(l))
	}
	return lines
}

// trimNumber prints a float without trailing zeros (4 → "4", 2.5 → "2.5").
func trimNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
