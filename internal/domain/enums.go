package domain

import (
	"fmt"
	"strings"
)

// FormatKind identifies the container/encoding family of a dictionary file.
// The set is closed: every kind has exactly one parser.
type FormatKind string

const (
	FormatFlatFile FormatKind = "FLAT_FILE"
	FormatDictd    FormatKind = "DICTD"
	FormatTEI      FormatKind = "TEI"
)

func (k FormatKind) String() string { return string(k) }

func (k FormatKind) IsValid() bool {
	switch k {
	case FormatFlatFile, FormatDictd, FormatTEI:
		return true
	}
	return false
}

// formatAliases maps user-facing names (config files, vocabulary overrides)
// to FormatKind values.
var formatAliases = map[string]FormatKind{
	"flat":      FormatFlatFile,
	"flat_file": FormatFlatFile,
	"dz":        FormatFlatFile,
	"dictd":     FormatDictd,
	"tei":       FormatTEI,
	"xml":       FormatTEI,
}

// ParseFormatKind resolves a case-insensitive format name.
func ParseFormatKind(s string) (FormatKind, error) {
	if k, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	if k := FormatKind(strings.ToUpper(strings.TrimSpace(s))); k.IsValid() {
		return k, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// PartOfSpeech is the canonical grammatical category of an entry.
// Unknown means "tag absent or unrecognized"; Other means a recognized
// tag that is not a content word (preposition, pronoun, article...).
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "NOUN"
	PartOfSpeechVerb      PartOfSpeech = "VERB"
	PartOfSpeechAdjective PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb    PartOfSpeech = "ADVERB"
	PartOfSpeechOther     PartOfSpeech = "OTHER"
	PartOfSpeechUnknown   PartOfSpeech = "UNKNOWN"
)

// AllPartsOfSpeech lists the canonical set in a fixed order.
var AllPartsOfSpeech = []PartOfSpeech{
	PartOfSpeechNoun,
	PartOfSpeechVerb,
	PartOfSpeechAdjective,
	PartOfSpeechAdverb,
	PartOfSpeechOther,
	PartOfSpeechUnknown,
}

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdverb, PartOfSpeechOther, PartOfSpeechUnknown:
		return true
	}
	return false
}

// posNames maps the short codes accepted on the command line and in config
// files to canonical values.
var posNames = map[string]PartOfSpeech{
	"n":         PartOfSpeechNoun,
	"noun":      PartOfSpeechNoun,
	"v":         PartOfSpeechVerb,
	"verb":      PartOfSpeechVerb,
	"adj":       PartOfSpeechAdjective,
	"adjective": PartOfSpeechAdjective,
	"adv":       PartOfSpeechAdverb,
	"adverb":    PartOfSpeechAdverb,
	"other":     PartOfSpeechOther,
	"unknown":   PartOfSpeechUnknown,
}

// ParsePartOfSpeech resolves a case-insensitive short code or canonical name.
func ParsePartOfSpeech(s string) (PartOfSpeech, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if p, ok := posNames[key]; ok {
		return p, nil
	}
	if p := PartOfSpeech(strings.ToUpper(key)); p.IsValid() {
		return p, nil
	}
	return "", NewValidationError("pos", fmt.Sprintf("unknown part of speech %q", s))
}
