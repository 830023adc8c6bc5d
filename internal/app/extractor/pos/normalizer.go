package pos

import (
	"slices"
	"strings"
	"unicode"

	"github.com/heartmarshall/zippy/internal/domain"
)

// Normalizer maps the native tags of one format onto canonical POS sets.
type Normalizer struct {
	vocab  *Vocabulary
	format domain.FormatKind
}

// NewNormalizer creates a Normalizer for archives of the given format.
func NewNormalizer(vocab *Vocabulary, format domain.FormatKind) *Normalizer {
	return &Normalizer{vocab: vocab, format: format}
}

// Normalize maps raw tag tokens to a canonical set. Tokens may hold several
// comma- or space-separated tags ("n, masc"). With no recognized tag the
// result is {Unknown}. Gender and number markers never add a POS on their
// own, except that an entry whose only recognized tags are such markers is
// treated as a noun.
func (n *Normalizer) Normalize(raw []string, lang string) domain.POSSet {
	set, _ := n.classify(raw, lang)
	return set
}

// Apply normalizes one raw entry. It reports false when the entry has no
// usable headword.
func (n *Normalizer) Apply(e domain.RawEntry, lang string) (domain.NormalizedEntry, bool) {
	e.Headword = domain.NormalizeText(e.Headword)
	if e.Headword == "" {
		return domain.NormalizedEntry{}, false
	}
	set, isPlural := n.classify(slices.Concat(e.POS, e.Markers), lang)
	return domain.NormalizedEntry{RawEntry: e, Parts: set, Plural: isPlural}, true
}

// IsTag reports whether token is a recognized tag for lang.
func (n *Normalizer) IsTag(lang, token string) bool {
	_, ok := n.vocab.Lookup(n.format, lang, token)
	return ok
}

// Tags binds the normalizer to a source language for inline tag detection.
func (n *Normalizer) Tags(lang string) LangTags {
	return LangTags{n: n, lang: lang}
}

// LangTags answers tag membership for one format and language.
type LangTags struct {
	n    *Normalizer
	lang string
}

func (t LangTags) IsTag(token string) bool { return t.n.IsTag(t.lang, token) }

func (n *Normalizer) classify(raw []string, lang string) (domain.POSSet, bool) {
	var (
		set       domain.POSSet
		hasMarker bool
		isPlural  bool
	)
	for _, token := range raw {
		for _, part := range splitTag(token) {
			tag, ok := n.vocab.Lookup(n.format, lang, part)
			if !ok {
				continue
			}
			switch tag.Kind {
			case KindPOS:
				set = set.With(tag.POS)
			case KindGender, KindSingular:
				hasMarker = true
			case KindPlural:
				hasMarker = true
				isPlural = true
			}
		}
	}

	switch {
	case !set.IsEmpty():
		return set, isPlural
	case hasMarker:
		return domain.NewPOSSet(domain.PartOfSpeechNoun), isPlural
	}
	return domain.NewPOSSet(domain.PartOfSpeechUnknown), isPlural
}

func splitTag(token string) []string {
	return strings.FieldsFunc(token, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || unicode.IsSpace(r)
	})
}
