package models

// Settings are user-level defaults applied when creating new drafts.
// LogoDataURL embeds the uploaded logo as a data URL ("" when no logo).
type Settings struct {
	BusinessInfo    string  `json:"businessInfo"`
	DefaultTaxRate  float64 `json:"defaultTaxRate"`
	DefaultCurrency string  `json:"defaultCurrency"`
	LogoDataURL     string  `json:"logoDataUrl"`
}

// DefaultSettings mirrors the built-in defaults used when the settings slot
// is absent or unreadable.
func DefaultSettings() Settings {
	return Settings{
		DefaultTaxRate:  20,
		DefaultCurrency: CurrencyEUR,
	}
}
