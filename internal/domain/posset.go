package domain

import "strings"

// POSSet is a set of canonical parts of speech.
type POSSet uint8

func posBit(p PartOfSpeech) POSSet {
	switch p {
	case PartOfSpeechNoun:
		return 1 << 0
	case PartOfSpeechVerb:
		return 1 << 1
	case PartOfSpeechAdjective:
		return 1 << 2
	case PartOfSpeechAdverb:
		return 1 << 3
	case PartOfSpeechOther:
		return 1 << 4
	case PartOfSpeechUnknown:
		return 1 << 5
	}
	return 0
}

// NewPOSSet builds a set from the given values. Invalid values are ignored.
func NewPOSSet(ps ...PartOfSpeech) POSSet {
	var s POSSet
	for _, p := range ps {
		s |= posBit(p)
	}
	return s
}

// ContentPOS is the default allow-set: nouns, adjectives, adverbs and verbs.
func ContentPOS() POSSet {
	return NewPOSSet(PartOfSpeechNoun, PartOfSpeechAdjective, PartOfSpeechAdverb, PartOfSpeechVerb)
}

// FullPOS contains every canonical value.
func FullPOS() POSSet {
	return NewPOSSet(AllPartsOfSpeech...)
}

func (s POSSet) Has(p PartOfSpeech) bool {
	b := posBit(p)
	return b != 0 && s&b != 0
}

func (s POSSet) With(p PartOfSpeech) POSSet { return s | posBit(p) }

func (s POSSet) Intersects(o POSSet) bool { return s&o != 0 }

func (s POSSet) IsEmpty() bool { return s == 0 }

// IsUnknownOnly reports whether the set is exactly {Unknown}.
func (s POSSet) IsUnknownOnly() bool { return s == posBit(PartOfSpeechUnknown) }

// Members returns the set's values in canonical order.
func (s POSSet) Members() []PartOfSpeech {
	var out []PartOfSpeech
	for _, p := range AllPartsOfSpeech {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s POSSet) String() string {
	members := s.Members()
	if len(members) == 0 {
		return "{}"
	}
	names := make([]string, len(members))
	for i, p := range members {
		names[i] = p.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}

// ParsePOSSet resolves a list of short codes ("n", "adj", ...) into a set.
func ParsePOSSet(names []string) (POSSet, error) {
	var s POSSet
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		p, err := ParsePartOfSpeech(name)
		if err != nil {
			return 0, err
		}
		s = s.With(p)
	}
	return s, nil
}
