// Package i18n selects the best translation record for a requested language.
// One resolution algorithm serves every translatable entity.
package i18n

import "strings"

// Translation is implemented by every per-language record.
type Translation interface {
	Language() string
	Default() bool
}

// Resolve picks a translation for lang: the exact language match if present,
// else the record flagged as default, else the first record. ok is false only
// when items is empty; callers render a missing translation as empty fields
// rather than failing the request.
func Resolve[T Translation](items []T, lang string) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	lang = NormalizeLanguage(lang)
	if lang != "" {
		for _, item := range items {
			if NormalizeLanguage(item.Language()) == lang {
				return item, true
			}
		}
	}
	for _, item := range items {
		if item.Default() {
			return item, true
		}
	}
	return items[0], true
}

// NormalizeLanguage lowercases and trims a language code.
func NormalizeLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsValidLanguage accepts ISO-639-1 style codes, optionally with a region
// subtag (en, ar, fa, ur, en-us).
func IsValidLanguage(code string) bool {
	code = NormalizeLanguage(code)
	if code == "" {
		return false
	}
	parts := strings.Split(code, "-")
	if len(parts) > 2 {
		return false
	}
	for _, part := range parts {
		if len(part) < 2 || len(part) > 3 {
			return false
		}
		for i := 0; i < len(part); i++ {
			if part[i] < 'a' || part[i] > 'z' {
				return false
			}
		}
	}
	return true
}
