package services

import (
	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/storage"
)

// PrefsService is the injected home of the two UI toggles (language, theme).
// It replaces the original's ambient process-wide state: everything that
// needs a preference asks this service.
type PrefsService struct {
	Store *storage.Store
}

func NewPrefsService(store *storage.Store) *PrefsService {
	return &PrefsService{Store: store}
}

// Language returns the stored language, defaulting to English.
func (p *PrefsService) Language() string {
	if v, ok := p.StoredLanguage(); ok {
		return v
	}
	return models.LangEN
}

// StoredLanguage reports the persisted language, if any. Callers that want a
// different fallback than the English default (say, the Accept-Language
// header) check the second return.
func (p *PrefsService) StoredLanguage() (string, bool) {
	if v, ok := p.Store.Get(storage.LangKey); ok && models.ValidLanguage(v) {
		return v, true
	}
	return "", false
}

// Theme returns the stored theme, defaulting to dark.
func (p *PrefsService) Theme() string {
	if v, ok := p.Store.Get(storage.ThemeKey); ok && models.ValidTheme(v) {
		return v
	}
	return models.ThemeDark
}

// Get bundles both preferences.
func (p *PrefsService) Get() models.Preferences {
	return models.Preferences{Language: p.Language(), Theme: p.Theme()}
}

// SetLanguage persists v when valid and returns the now-effective language.
func (p *PrefsService) SetLanguage(v string) string {
	if !models.ValidLanguage(v) {
		return p.Language()
	}
	_ = p.Store.Put(storage.LangKey, v)
	return v
}

// SetTheme persists v when valid and returns the now-effective theme.
func (p *PrefsService) SetTheme(v string) string {
	if !models.ValidTheme(v) {
		return p.Theme()
	}
	_ = p.Store.Put(storage.ThemeKey, v)
	return v
}

// ToggleLanguage flips en<->fr and persists the result.
func (p *PrefsService) ToggleLanguage() string {
	if p.Language() == models.LangEN {
		return p.SetLanguage(models.LangFR)
	}
	return p.SetLanguage(models.LangEN)
}

// ToggleTheme flips dark<->light and persists the result.
func (p *PrefsService) ToggleTheme() string {
	if p.Theme() == models.ThemeDark {
		return p.SetTheme(models.ThemeLight)
	}
	return p.SetTheme(models.ThemeDark)
}
