package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares a word for output and comparison:
//   - applies Unicode NFC composition
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into one space
//
// Case, diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// FoldKey returns the case-insensitive identity of a word: NFC composed and
// Unicode case folded. Diacritics are not removed.
func FoldKey(word string) string {
	return cases.Fold().String(norm.NFC.String(word))
}
