package services

import (
	"encoding/json"

	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/storage"
)

// SettingsService owns the singleton settings slot. Reads always succeed:
// a missing or unreadable slot yields the built-in defaults, partial records
// are overlaid onto the defaults field by field.
type SettingsService struct {
	Store *storage.Store
}

func NewSettingsService(store *storage.Store) *SettingsService {
	return &SettingsService{Store: store}
}

// settingsFile mirrors models.Settings with pointer fields so a stored
// record that predates a field still gets that field's default.
type settingsFile struct {
	BusinessInfo    *string  `json:"businessInfo"`
	DefaultTaxRate  *float64 `json:"defaultTaxRate"`
	DefaultCurrency *string  `json:"defaultCurrency"`
	LogoDataURL     *string  `json:"logoDataUrl"`
}

// Get returns the current settings, defaulting silently on any storage or
// decode failure.
func (s *SettingsService) Get() models.Settings {
	out := models.DefaultSettings()
	raw, ok := s.Store.Get(storage.SettingsKey)
	if !ok {
		return out
	}
	var f settingsFile
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return out
	}
	if f.BusinessInfo != nil {
		out.BusinessInfo = *f.BusinessInfo
	}
	if f.DefaultTaxRate != nil {
		out.DefaultTaxRate = *f.DefaultTaxRate
	}
	if f.DefaultCurrency != nil && models.ValidCurrency(*f.DefaultCurrency) {
		out.DefaultCurrency = *f.DefaultCurrency
	}
	if f.LogoDataURL != nil {
		out.LogoDataURL = *f.LogoDataURL
	}
	return out
}

// Update overwrites the settings slot with in. Invalid currency falls back
// to the previous value; write failures are swallowed and the returned value
// reflects what is now live in memory.
func (s *SettingsService) Update(in models.Settings) models.Settings {
	if !models.ValidCurrency(in.DefaultCurrency) {
		in.DefaultCurrency = s.Get().DefaultCurrency
	}
	s.persist(in)
	return in
}

// SetLogo stores the uploaded logo as an embedded data URL.
func (s *SettingsService) SetLogo(dataURL string) models.Settings {
	cur := s.Get()
	cur.LogoDataURL = dataURL
	s.persist(cur)
	return cur
}

// ClearLogo removes the embedded logo.
func (s *SettingsService) ClearLogo() models.Settings {
	cur := s.Get()
	cur.LogoDataURL = ""
	s.persist(cur)
	return cur
}

func (s *SettingsService) persist(v models.Settings) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	// storage failure is not surfaced; the in-memory value already took effect
	_ = s.Store.Put(storage.SettingsKey, string(raw))
}
