package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldLetters covers lowercase letters with no canonical decomposition, so
// dropping combining marks alone would leave them untouched.
var foldLetters = strings.NewReplacer(
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
	"ø", "o",
	"đ", "d",
	"ð", "d",
	"ł", "l",
	"ħ", "h",
	"ı", "i",
	"þ", "th",
)

// Normalize trims, lower-cases and strips diacritics so that matching is
// accent- and case-insensitive. The search term and every candidate value go
// through the same function.
func Normalize(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		return foldLetters.Replace(text)
	}
	return foldLetters.Replace(stripped)
}
