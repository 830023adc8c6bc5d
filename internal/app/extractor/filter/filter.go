// Package filter selects content words by part of speech.
package filter

import (
	"iter"

	"github.com/heartmarshall/zippy/internal/domain"
)

// Policy decides which normalized entries are kept.
type Policy struct {
	// Allowed is the POS allow-set. An entry passes when its set shares
	// at least one value with it.
	Allowed domain.POSSet
	// IncludeUnknown keeps entries whose set is exactly {Unknown}.
	IncludeUnknown bool
	// SkipPlurals drops entries carrying a plural marker.
	SkipPlurals bool
}

// DefaultPolicy keeps nouns, verbs, adjectives, adverbs and untagged
// entries, and drops plural forms.
func DefaultPolicy() Policy {
	return Policy{
		Allowed:        domain.ContentPOS(),
		IncludeUnknown: true,
		SkipPlurals:    true,
	}
}

// Pass reports whether e is kept under p.
func (p Policy) Pass(e domain.NormalizedEntry) bool {
	if p.SkipPlurals && e.Plural {
		return false
	}
	if e.Parts.Intersects(p.Allowed) {
		return true
	}
	return p.IncludeUnknown && e.Parts.IsUnknownOnly()
}

// Apply lazily yields the entries of seq that pass p, preserving order.
func Apply(seq iter.Seq[domain.NormalizedEntry], p Policy) iter.Seq[domain.NormalizedEntry] {
	return func(yield func(domain.NormalizedEntry) bool) {
		for e := range seq {
			if p.Pass(e) && !yield(e) {
				return
			}
		}
	}
}
