// Package textutil provides text canonicalization helpers for matching
// against accent- and whitespace-mangled PDF text.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFKD and drops combining marks, so "Lançamentos"
// becomes "Lancamentos".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// StripAccents removes diacritics without touching case or spacing.
func StripAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize canonicalizes text for marker and label matching: accents
// stripped, lowercased, all whitespace removed. PDF extraction reflows text
// unpredictably, so matching is only reliable against this form.
func Normalize(s string) string {
	return StripSpace(strings.ToLower(StripAccents(s)))
}

// StripSpace removes every whitespace rune, including those PDF reflow
// injects mid-token ("19/1 2" -> "19/12").
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
