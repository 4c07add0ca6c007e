package domain

import "strings"

// LocalizedText holds per-language variants of a text field, keyed by
// language code (e.g. "en", "ar"). Fields using it never assume a fixed
// language set; absent languages simply contribute nothing.
type LocalizedText map[string]string

// Get returns the text for the given language, falling back to English and
// then to any available variant.
func (t LocalizedText) Get(lang string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	if v, ok := t["en"]; ok && v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Contains reports whether any language variant contains the given substring,
// case-insensitively.
func (t LocalizedText) Contains(sub string) bool {
	sub = strings.ToLower(sub)
	for _, v := range t {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}

// HasPrefix reports whether any language variant starts with the given
// prefix, case-insensitively.
func (t LocalizedText) HasPrefix(prefix string) bool {
	prefix = strings.ToLower(prefix)
	for _, v := range t {
		if strings.HasPrefix(strings.ToLower(v), prefix) {
			return true
		}
	}
	return false
}

// Values returns all non-empty language variants.
func (t LocalizedText) Values() []string {
	out := make([]string, 0, len(t))
	for _, v := range t {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
