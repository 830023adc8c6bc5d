package extractor

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zippy/internal/domain"
)

// Result holds the outcome of extracting one dictionary.
type Result struct {
	RunID uuid.UUID
	File  string
	Kind  domain.FormatKind
	Pair  domain.LanguagePair
	Stats domain.ParseStats

	Normalized int // entries with a usable headword after normalization
	Filtered   int // entries rejected by the content filter
	Kept       int // entries fed to the assembler

	SourceWords int
	TargetWords int
	// SourcePath and TargetPath are empty for a skipped side.
	SourcePath string
	TargetPath string

	License  string
	Duration time.Duration
	// Err is set when the dictionary could not be processed.
	Err error
	// Warning is set when the dictionary was processed but yielded no words.
	Warning error
}
