package models

// UI preference values. Persisted as bare strings, not JSON objects, to stay
// compatible with the original slot contents.
const (
	LangEN = "en"
	LangFR = "fr"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preferences bundles the two UI toggles.
type Preferences struct {
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

func ValidLanguage(v string) bool { return v == LangEN || v == LangFR }

func ValidTheme(v string) bool { return v == ThemeLight || v == ThemeDark }
