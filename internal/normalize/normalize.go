// Package normalize turns noisy extracted certificate text into a canonical
// comparable string.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text collapses every run of identical consecutive characters to one
// occurrence, then every whitespace run to a single space, and trims the
// result. PDF extraction often emits each glyph twice; the collapse is lossy
// and also removes legitimate doubled letters.
func Text(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	havePrev := false
	inSpace := false
	for _, r := range s {
		if havePrev && r == prev && r != '\n' {
			continue
		}
		prev, havePrev = r, true
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and strips diacritics (Café -> cafe).
func Fold(s string) string {
	out, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
