package i18n

import (
	"strings"

	"github.com/flashinvoice/flashinvoice/internal/models"
)

// Two supported languages (models.LangEN/LangFR); English is the default,
// matching the app's original behavior.

var translations = map[string]map[string]string{
	models.LangEN: {
		"appTitle":       "FlashInvoice App",
		"dashboard":      "Dashboard",
		"newInvoice":     "New invoice",
		"newQuote":       "New quote",
		"history":        "History",
		"settings":       "Settings",
		"themeDark":      "Dark mode",
		"themeLight":     "Light mode",
		"invoice":        "Invoice",
		"quote":          "Quote",
		"from":           "From",
		"billTo":         "Bill to",
		"invoiceNumber":  "Invoice #",
		"issueDate":      "Issue date",
		"dueDate":        "Due date",
		"description":    "Description",
		"quantity":       "Qty",
		"unitPrice":      "Unit price",
		"lineTotal":      "Total",
		"subtotal":       "Subtotal",
		"tax":            "Tax",
		"total":          "Total",
		"notes":          "Notes",
		"savedToHistory": "Saved to history",
	},
	models.LangFR: {
		"appTitle":       "Application FlashInvoice",
		"dashboard":      "Tableau de bord",
		"newInvoice":     "Nouvelle facture",
		"newQuote":       "Nouveau devis",
		"history":        "Historique",
		"settings":       "Paramètres",
		"themeDark":      "Mode sombre",
		"themeLight":     "Mode clair",
		"invoice":        "Facture",
		"quote":          "Devis",
		"from":           "Émetteur",
		"billTo":         "Facturé à",
		"invoiceNumber":  "Facture n°",
		"issueDate":      "Date d'émission",
		"dueDate":        "Date d'échéance",
		"description":    "Description",
		"quantity":       "Qté",
		"unitPrice":      "Prix unitaire",
		"lineTotal":      "Total",
		"subtotal":       "Sous-total",
		"tax":            "TVA",
		"total":          "Total",
		"notes":          "Notes",
		"savedToHistory": "Enregistrée dans l'historique",
	},
}

// T translates code for lang. Unknown languages fall back to English;
// unknown codes fall back to the code itself so missing entries stay visible.
func T(lang, code string) string {
	m, ok := translations[lang]
	if !ok {
		m = translations[models.LangEN]
	}
	if v, ok := m[code]; ok {
		return v
	}
	if v, ok := translations[models.LangEN][code]; ok {
		return v
	}
	return code
}

// DetectLanguage picks en or fr from an Accept-Language header value,
// defaulting to English.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if strings.HasPrefix(tag, models.LangFR) {
			return models.LangFR
		}
		if strings.HasPrefix(tag, models.LangEN) {
			return models.LangEN
		}
	}
	return models.LangEN
}
