// Package wordlist assembles and writes the per-language output lists.
package wordlist

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/zippy/internal/domain"
)

// EnglishStopwords are dropped from English-side lists by default.
var EnglishStopwords = []string{
	"the", "and", "of", "or", "in", "to", "for", "with", "from", "by", "at",
	"on", "an", "as", "be", "is", "are", "was", "were", "been", "have", "has",
	"had", "will", "would", "could", "should", "may", "might", "can", "must",
}

// Wordlist is a set of words unique under case folding. The first spelling
// added for a word is the one kept.
type Wordlist struct {
	words map[string]string
}

// New creates an empty Wordlist.
func New() *Wordlist {
	return &Wordlist{words: make(map[string]string)}
}

// Add inserts w and reports whether it was new. Blank words are ignored.
func (l *Wordlist) Add(w string) bool {
	w = domain.NormalizeText(w)
	if w == "" {
		return false
	}
	key := domain.FoldKey(w)
	if _, ok := l.words[key]; ok {
		return false
	}
	l.words[key] = w
	return true
}

// Sorted returns the words ordered by code point of their folded form, with
// the spelling itself as tie-break.
func (l *Wordlist) Sorted() []string {
	type item struct{ key, word string }
	items := make([]item, 0, len(l.words))
	for k, w := range l.words {
		items = append(items, item{k, w})
	}
	slices.SortFunc(items, func(a, b item) int {
		return cmp.Or(strings.Compare(a.key, b.key), strings.Compare(a.word, b.word))
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.word
	}
	return out
}

// bracketedRe matches annotations and tag groups inside translations.
var bracketedRe = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]|<[^<>]*>|\{[^{}]*\}`)

// Tokens splits translation text into candidate words. Bracketed
// annotations are removed and boundary punctuation is trimmed; tokens
// holding digits, markup or no letter at all are discarded.
func Tokens(text string) []string {
	text = bracketedRe.ReplaceAllString(text, " ")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case ',', ';', '/', '~', '、', '，', '；', '،', '؛', '|':
			return true
		}
		return false
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := cleanToken(f); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// CleanHeadword returns the headword as an output word, or "" when it
// carries markup or digits.
func CleanHeadword(headword string) string {
	if strings.ContainsAny(headword, "<>()[]{}/\\") {
		return ""
	}
	w := domain.NormalizeText(trimBoundary(headword))
	if !hasLetter(w) || strings.ContainsFunc(w, unicode.IsDigit) {
		return ""
	}
	return w
}

func cleanToken(token string) string {
	w := trimBoundary(token)
	if w == "" || strings.ContainsAny(w, "<>()[]{}\\\"") {
		return ""
	}
	if !hasLetter(w) || strings.ContainsFunc(w, unicode.IsDigit) {
		return ""
	}
	return w
}

func trimBoundary(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func hasLetter(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLetter)
}

// Options configures an Assembler.
type Options struct {
	// MinRunes is the shortest word kept, in runes.
	MinRunes        int
	SourceStopwords []string
	TargetStopwords []string
	// SkipSource and SkipTarget disable a side entirely.
	SkipSource bool
	SkipTarget bool
}

// Assembler builds the source and target wordlists of one dictionary.
type Assembler struct {
	opts    Options
	source  *Wordlist
	target  *Wordlist
	srcStop map[string]bool
	tgtStop map[string]bool
}

// NewAssembler creates an Assembler.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{
		opts:    opts,
		source:  New(),
		target:  New(),
		srcStop: stopSet(opts.SourceStopwords),
		tgtStop: stopSet(opts.TargetStopwords),
	}
}

func stopSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[domain.FoldKey(strings.TrimSpace(w))] = true
	}
	return m
}

// Add feeds one filtered entry: its headword to the source list and every
// translation token to the target list.
func (a *Assembler) Add(e domain.NormalizedEntry) {
	if !a.opts.SkipSource {
		if w := CleanHeadword(e.Headword); a.accept(w, a.srcStop) {
			a.source.Add(w)
		}
	}
	if a.opts.SkipTarget {
		return
	}
	for _, t := range e.Translations {
		for _, w := range Tokens(t) {
			if a.accept(w, a.tgtStop) {
				a.target.Add(w)
			}
		}
	}
}

func (a *Assembler) accept(w string, stop map[string]bool) bool {
	if w == "" || utf8.RuneCountInString(w) < a.opts.MinRunes || !isWordLike(w) {
		return false
	}
	return !stop[domain.FoldKey(w)]
}

// minLetterShare is the share of runes that must be letters or marks.
const minLetterShare = 0.6

// isWordLike rejects acronyms ("USB", "ADN") and tokens that are mostly
// punctuation.
func isWordLike(w string) bool {
	letters, upper, total := 0, 0, 0
	for _, r := range w {
		total++
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		case unicode.IsMark(r):
			letters++
		}
	}
	if upper > 1 && upper == letters {
		return false
	}
	return float64(letters) >= minLetterShare*float64(total)
}

// Finalize returns both lists sorted, each narrowed to the script most of
// its words are written in. A disabled side is returned empty.
func (a *Assembler) Finalize() (source, target []string) {
	return narrowToScript(a.source.Sorted()), narrowToScript(a.target.Sorted())
}
