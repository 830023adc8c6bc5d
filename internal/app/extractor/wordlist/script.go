package wordlist

import "unicode"

// scripts are the writing systems a list can be narrowed to. Han, Hiragana
// and Katakana count as one script. Latin must stay first.
var scripts = [][]*unicode.RangeTable{
	{unicode.Latin},
	{unicode.Cyrillic},
	{unicode.Greek},
	{unicode.Arabic},
	{unicode.Hebrew},
	{unicode.Devanagari},
	{unicode.Han, unicode.Hiragana, unicode.Katakana},
	{unicode.Hangul},
	{unicode.Thai},
	{unicode.Georgian},
	{unicode.Armenian},
	{unicode.Ethiopic},
}

const (
	latin     = 0
	noScript  = -1
	mixedWord = -2
)

// minForeignShare is the share of letters a non-Latin script needs to
// dominate a list that also holds Latin words.
const minForeignShare = 0.1

func scriptOf(r rune) int {
	for i, tables := range scripts {
		if unicode.IsOneOf(tables, r) {
			return i
		}
	}
	return noScript
}

// wordScript returns the script of every letter in w, noScript when no
// letter has a known script, or mixedWord when scripts differ.
func wordScript(w string) int {
	s := noScript
	for _, r := range w {
		if !unicode.IsLetter(r) {
			continue
		}
		rs := scriptOf(r)
		switch {
		case rs == noScript || rs == s:
		case s == noScript:
			s = rs
		default:
			return mixedWord
		}
	}
	return s
}

// dominantScript picks the script a list is written in. A non-Latin script
// wins over Latin once it holds minForeignShare of the letters, so glosses
// and romanizations do not outvote the language itself.
func dominantScript(words []string) int {
	counts := make([]int, len(scripts))
	total := 0
	for _, w := range words {
		for _, r := range w {
			if s := scriptOf(r); s != noScript {
				counts[s]++
				total++
			}
		}
	}
	if total == 0 {
		return noScript
	}

	best := noScript
	for s := latin + 1; s < len(counts); s++ {
		if counts[s] > 0 && (best == noScript || counts[s] > counts[best]) {
			best = s
		}
	}
	if best != noScript && float64(counts[best]) >= minForeignShare*float64(total) {
		return best
	}
	if counts[latin] > 0 {
		return latin
	}
	return best
}

// narrowToScript keeps the words written entirely in the dominant script of
// words. Words without a scripted letter are kept.
func narrowToScript(words []string) []string {
	dominant := dominantScript(words)
	if dominant == noScript {
		return words
	}
	out := words[:0]
	for _, w := range words {
		if s := wordScript(w); s == dominant || s == noScript {
			out = append(out, w)
		}
	}
	return out
}
