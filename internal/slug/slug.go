// Package slug derives a safe output filename proposal from a bookmark
// title.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxLen caps the proposed name (before the extension) in bytes.
const maxLen = 50

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FromTitle proposes "<slug>.pdf" for a bookmark title: diacritics are
// folded to their base letters, anything that is not a letter or digit
// collapses to a single underscore, and the result is truncated. A title
// with no usable characters falls back to "section.pdf".
func FromTitle(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		// Normalisation only fails on malformed input; the raw title
		// still slugs fine byte-wise.
		folded = title
	}

	var b strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "_")
	if len(s) > maxLen {
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimRight(s[:cut], "_")
	}
	if s == "" {
		s = "section"
	}
	return s + ".pdf"
}
