package domain

// RawEntry is one lexicographic record as extracted by a format parser,
// before POS normalization.
type RawEntry struct {
	Headword     string
	POS          []string // format-native tag tokens, possibly empty
	Translations []string
	Markers      []string // gender/number markers carried outside the POS field
	Index        int      // position of the source record within the archive
}

// NormalizedEntry is a RawEntry with a canonical POS set.
// The headword belongs to the source language, translations to the target.
type NormalizedEntry struct {
	RawEntry
	Parts  POSSet
	Plural bool
}

// LanguagePair labels the two sides of one dictionary.
type LanguagePair struct {
	SourceCode string
	TargetCode string
	SourceName string
	TargetName string
	// Resolved is false when the labels fell back to the raw file name.
	Resolved bool
}

// EnglishCode is the ISO 639-3 code used for the English-side toggle.
const EnglishCode = "eng"

func (p LanguagePair) SourceIsEnglish() bool { return p.SourceCode == EnglishCode }
func (p LanguagePair) TargetIsEnglish() bool { return p.TargetCode == EnglishCode }

// maxSkipped caps the record errors a ParseStats keeps.
const maxSkipped = 20

// ParseStats accumulates per-archive parser counters.
type ParseStats struct {
	Records   int // records read from the archive (excluding metadata records)
	Entries   int // raw entries emitted
	Tagged    int // raw entries carrying at least one POS token
	Malformed int // records skipped as malformed
	Dropped   int // records without a usable headword
	Metadata  int // header/preamble/license records routed to metadata

	// Skipped holds the first malformed-record errors, for reporting.
	Skipped []*RecordError
}

// Skip counts a malformed record and keeps its error.
func (s *ParseStats) Skip(err *RecordError) {
	s.Malformed++
	if len(s.Skipped) < maxSkipped {
		s.Skipped = append(s.Skipped, err)
	}
}

// TaggedRatio is the share of emitted entries that carried a POS token.
func (s ParseStats) TaggedRatio() float64 {
	if s.Entries == 0 {
		return 0
	}
	return float64(s.Tagged) / float64(s.Entries)
}
