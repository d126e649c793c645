package domain

import "time"

// LocalizedEntry is one piece of translatable product content: a base-language
// value plus zero or more per-language overrides keyed by normalized 2-letter code.
// The base value is the terminal fallback for every language.
type LocalizedEntry struct {
	Base      string            `json:"base"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// Override returns the non-empty override for lang, if any.
func (e LocalizedEntry) Override(lang string) (string, bool) {
	text, ok := e.Overrides[lang]
	if !ok || text == "" {
		return "", false
	}
	return text, true
}

// TextEntry binds a localized entry to a product field (e.g. "ingredients",
// "short_description") for persistence.
type TextEntry struct {
	ProductID int64          `json:"product_id"`
	Field     string         `json:"field"`
	Entry     LocalizedEntry `json:"entry"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ResolvedText is the output of localized text resolution.
type ResolvedText struct {
	Text           string `json:"text"`
	LanguageUsed   string `json:"language_used"`
	HadTranslation bool   `json:"had_translation"`
}
