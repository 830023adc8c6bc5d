package extractor

import (
	"github.com/heartmarshall/zippy/internal/app/extractor/filter"
	"github.com/heartmarshall/zippy/internal/config"
)

// Config holds extraction pipeline settings.
type Config struct {
	InputDir  string
	OutputDir string
	Policy    filter.Policy
	MinRunes  int
	// SkipEnglish omits the wordlist of any English side.
	SkipEnglish bool
	// KeepStopwords disables the built-in English stopword list.
	KeepStopwords  bool
	ExtraStopwords []string
}

// NewConfig derives pipeline settings from validated application config.
// An empty allow-set selects nothing, untagged entries included.
func NewConfig(cfg *config.Config) Config {
	return Config{
		InputDir:  cfg.Paths.InputDir,
		OutputDir: cfg.Paths.OutputDir,
		Policy: filter.Policy{
			Allowed:        cfg.Filter.Allowed,
			IncludeUnknown: !cfg.Filter.ExcludeUnknown && !cfg.Filter.Allowed.IsEmpty(),
			SkipPlurals:    !cfg.Filter.KeepPlurals,
		},
		MinRunes:       cfg.Wordlist.MinRunes,
		SkipEnglish:    cfg.Filter.SkipEnglish,
		KeepStopwords:  cfg.Wordlist.KeepStopwords,
		ExtraStopwords: cfg.Wordlist.ExtraStopwords,
	}
}
