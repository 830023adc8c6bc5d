// Package pos maps format-native part-of-speech tags onto the canonical set.
// Tables are keyed by (format, language) with wildcard fallbacks and are
// immutable once built.
package pos

import (
	"maps"
	"strings"

	"github.com/heartmarshall/zippy/internal/domain"
)

// Kind classifies a recognized tag.
type Kind int

const (
	// KindPOS carries a part of speech.
	KindPOS Kind = iota
	// KindGender is a grammatical gender marker (masc, fem, neut...).
	KindGender
	// KindPlural marks a plural form.
	KindPlural
	// KindSingular marks a singular form or another number that is not plural.
	KindSingular
)

// Tag is the meaning of one native tag token.
type Tag struct {
	Kind Kind
	POS  domain.PartOfSpeech // set when Kind == KindPOS
}

func posTag(p domain.PartOfSpeech) Tag { return Tag{Kind: KindPOS, POS: p} }

var (
	noun     = posTag(domain.PartOfSpeechNoun)
	verb     = posTag(domain.PartOfSpeechVerb)
	adj      = posTag(domain.PartOfSpeechAdjective)
	adv      = posTag(domain.PartOfSpeechAdverb)
	other    = posTag(domain.PartOfSpeechOther)
	gender   = Tag{Kind: KindGender}
	plural   = Tag{Kind: KindPlural}
	singular = Tag{Kind: KindSingular}
)

// commonTags apply to every format and language.
var commonTags = map[string]Tag{
	// Nouns, including proper nouns
	"n":           noun,
	"noun":        noun,
	"nn":          noun,
	"subst":       noun,
	"substantive": noun,
	"pn":          noun,
	"propn":       noun,
	"prop":        noun,
	"name":        noun,
	"nm":          noun,
	"nf":          noun,
	"nmf":         noun,

	// Verbs and verb subclasses
	"v":       verb,
	"verb":    verb,
	"vb":      verb,
	"vt":      verb,
	"vi":      verb,
	"vr":      verb,
	"vtr":     verb,
	"vitr":    verb,
	"trans":   verb,
	"intrans": verb,
	"refl":    verb,
	"aux":     verb,
	"modal":   verb,

	"adj":       adj,
	"adjective": adj,
	"aj":        adj,

	"adv":    adv,
	"adverb": adv,

	// Function words and other non-content categories
	"prep":               other,
	"preposition":        other,
	"pron":               other,
	"pronoun":            other,
	"conj":               other,
	"conjunction":        other,
	"art":                other,
	"article":            other,
	"det":                other,
	"determiner":         other,
	"num":                other,
	"numeral":            other,
	"int":                other,
	"intj":               other,
	"interj":             other,
	"interjection":       other,
	"part":               other,
	"particle":           other,
	"ptcl":               other,
	"postp":              other,
	"phraseologicalunit": other,
	"phrase":             other,
	"idiom":              other,
	"abbr":               other,
	"abbrev":             other,
	"affix":              other,
	"prefix":             other,
	"suffix":             other,

	// Gender and number markers
	"m":         gender,
	"f":         gender,
	"masc":      gender,
	"fem":       gender,
	"neut":      gender,
	"neuter":    gender,
	"masculine": gender,
	"feminine":  gender,
	"common":    gender,
	"mf":        gender,
	"pl":        plural,
	"plural":    plural,
	"plur":      plural,
	"sg":        singular,
	"sing":      singular,
	"singular":  singular,
	"du":        singular,
	"dual":      singular,
}

// teiTags are values of <pos> and <gram type="pos"> used across FreeDict
// TEI sources.
var teiTags = map[string]Tag{
	"adjective":  adj,
	"adverb":     adv,
	"propernoun": noun,
	"cardinal":   other,
	"ordinal":    other,
}

var languageTags = map[string]map[string]Tag{
	"deu": {
		"nomen":    noun,
		"adjektiv": adj,
		"präp":     other,
		"konj":     other,
		"artikel":  other,
		"mask":     gender,
		"neutr":    gender,
		"maskulin": gender,
		"feminin":  gender,
		"neutrum":  gender,
	},
	"fra": {
		"nom":      noun,
		"adjectif": adj,
		"verbe":    verb,
		"adverbe":  adv,
		"prép":     other,
		"loc":      other,
	},
	"spa": {
		"sm":       noun,
		"sf":       noun,
		"s":        noun,
		"vintr":    verb,
		"vprnl":    verb,
		"adjetivo": adj,
		"adverbio": adv,
	},
	"ita": {
		"sost":  noun,
		"agg":   adj,
		"avv":   adv,
		"verbo": verb,
	},
	"jpn": {
		"v1":     verb,
		"v5":     verb,
		"v5r":    verb,
		"v5u":    verb,
		"vs":     verb,
		"vk":     verb,
		"vz":     verb,
		"adj-i":  adj,
		"adj-na": adj,
		"adj-no": adj,
		"adv-to": adv,
		"prt":    other,
		"exp":    other,
		"ctr":    other,
		"pref":   other,
		"suf":    other,
	},
}

type tableKey struct {
	format domain.FormatKind // "" matches any format
	lang   string            // "" matches any language
}

// Vocabulary holds the tag tables. It is safe for concurrent reads.
type Vocabulary struct {
	tables map[tableKey]map[string]Tag
}

// DefaultVocabulary builds the built-in tables.
func DefaultVocabulary() *Vocabulary {
	v := &Vocabulary{tables: make(map[tableKey]map[string]Tag)}
	v.tables[tableKey{}] = maps.Clone(commonTags)
	v.tables[tableKey{format: domain.FormatTEI}] = maps.Clone(teiTags)
	for lang, tags := range languageTags {
		v.tables[tableKey{lang: lang}] = maps.Clone(tags)
	}
	return v
}

// With returns a copy of v extended with the given table entries; entries
// in tables override existing ones for the same key and token.
func (v *Vocabulary) With(tables []Table) *Vocabulary {
	out := &Vocabulary{tables: make(map[tableKey]map[string]Tag, len(v.tables))}
	for k, t := range v.tables {
		out.tables[k] = maps.Clone(t)
	}
	for _, t := range tables {
		key := tableKey{format: t.Format, lang: strings.ToLower(t.Lang)}
		if out.tables[key] == nil {
			out.tables[key] = make(map[string]Tag, len(t.Tags))
		}
		for token, tag := range t.Tags {
			out.tables[key][CleanToken(token)] = tag
		}
	}
	return out
}

// Lookup resolves a token for a format and source language. Tables are
// consulted from most to least specific: (format, lang), (format, any),
// (any, lang), (any, any).
func (v *Vocabulary) Lookup(format domain.FormatKind, lang, token string) (Tag, bool) {
	token = CleanToken(token)
	if token == "" {
		return Tag{}, false
	}
	lang = strings.ToLower(lang)
	for _, key := range []tableKey{
		{format: format, lang: lang},
		{format: format},
		{lang: lang},
		{},
	} {
		if tag, ok := v.tables[key][token]; ok {
			return tag, true
		}
	}
	return Tag{}, false
}

// CleanToken lowercases a tag token and strips surrounding whitespace,
// brackets and trailing punctuation ("n." → "n", "Adj," → "adj").
func CleanToken(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	token = strings.Trim(token, "<>()[]{}")
	token = strings.TrimRight(token, ".,;:!?")
	return strings.TrimSpace(token)
}
