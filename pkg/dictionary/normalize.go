package dictionary

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeWord returns word in NFC.
func NormalizeWord(word string) string {
	return norm.NFC.String(word)
}

// CaseInsensitiveForms returns word lowercased, and lowercased with its
// combining marks removed.
func CaseInsensitiveForms(word string) []string {
	lower := cases.Lower(language.Und).String(word)
	return []string{lower, stripMarks(lower)}
}

// stripMarks decomposes s, drops every mark and recomposes what is left.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
