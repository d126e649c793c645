// Package i18n resolves localized product text with language fallback.
package i18n

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/shoptagapp/shoptag-server/internal/domain"
)

// Resolver picks the right variant of a localized entry for a requested
// language, falling back to the base text when no override exists.
type Resolver struct {
	defaultLanguage string
}

// NewResolver builds a resolver with the given default language. The default
// language maps onto the base text rather than an override.
func NewResolver(defaultLanguage string) *Resolver {
	return &Resolver{defaultLanguage: NormalizeLang(defaultLanguage)}
}

// NormalizeLang collapses a language identifier to its lowercase base
// subtag: "nl_NL", "nl-NL" and "NL" all become "nl". Unparseable input is
// lowercased and truncated at the first region separator so lookups stay
// byte-for-byte stable.
func NormalizeLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}

	normalized := strings.ReplaceAll(lang, "_", "-")
	if tag, err := language.Parse(normalized); err == nil {
		base, _ := tag.Base()
		return base.String()
	}

	lower := strings.ToLower(normalized)
	if i := strings.IndexByte(lower, '-'); i > 0 {
		lower = lower[:i]
	}
	return lower
}

// Resolve picks the text for lang out of entry. Requests for the default
// language, and requests in any language with no override, read the base
// text. The returned ResolvedText reports which language variant actually
// served the request.
func (r *Resolver) Resolve(entry domain.LocalizedEntry, lang string) (domain.ResolvedText, bool) {
	requested := NormalizeLang(lang)
	if requested == "" {
		requested = r.defaultLanguage
	}

	if requested != r.defaultLanguage {
		if text, ok := entry.Override(requested); ok {
			return domain.ResolvedText{
				Text:           text,
				LanguageUsed:   requested,
				HadTranslation: true,
			}, true
		}
	}

	if entry.Base == "" {
		return domain.ResolvedText{}, false
	}

	// Base text is never a translation, even when the default language was
	// asked for explicitly.
	return domain.ResolvedText{
		Text:           entry.Base,
		LanguageUsed:   r.defaultLanguage,
		HadTranslation: false,
	}, true
}

// DefaultLanguage returns the normalized default language.
func (r *Resolver) DefaultLanguage() string {
	return r.defaultLanguage
}
