package config

import (
	"github.com/heartmarshall/zippy/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Filter    FilterConfig    `yaml:"filter"`
	Wordlist  WordlistConfig  `yaml:"wordlist"`
	POS       POSConfig       `yaml:"pos"`
	Languages LanguagesConfig `yaml:"languages"`
	Log       LogConfig       `yaml:"log"`
}

// PathsConfig holds input and output locations.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir"  env:"ZIPPY_INPUT_DIR"  env-default:"dictionaries"`
	OutputDir string `yaml:"output_dir" env:"ZIPPY_OUTPUT_DIR" env-default:"wordlists"`
}

// FilterConfig holds content-word selection settings. Toggles default to
// false since env-default also applies to zero values read from YAML.
type FilterConfig struct {
	POSRaw         string `yaml:"pos"             env:"ZIPPY_POS"             env-default:"noun,verb,adjective,adverb"`
	ExcludeUnknown bool   `yaml:"exclude_unknown" env:"ZIPPY_EXCLUDE_UNKNOWN"`
	KeepPlurals    bool   `yaml:"keep_plurals"    env:"ZIPPY_KEEP_PLURALS"`
	SkipEnglish    bool   `yaml:"skip_english"    env:"ZIPPY_SKIP_ENGLISH"`

	// Allowed is parsed from POSRaw during validation.
	Allowed domain.POSSet `yaml:"-" env:"-"`
}

// WordlistConfig holds output list settings.
type WordlistConfig struct {
	MinRunes          int    `yaml:"min_runes"       env:"ZIPPY_MIN_RUNES"       env-default:"2"`
	KeepStopwords     bool   `yaml:"keep_stopwords"  env:"ZIPPY_KEEP_STOPWORDS"`
	ExtraStopwordsRaw string `yaml:"extra_stopwords" env:"ZIPPY_EXTRA_STOPWORDS"`

	// ExtraStopwords is parsed from ExtraStopwordsRaw during validation.
	ExtraStopwords []string `yaml:"-" env:"-"`
}

// POSConfig holds tag vocabulary settings.
type POSConfig struct {
	// VocabularyPath points to an optional TOML file extending the built-in
	// tag tables.
	VocabularyPath string `yaml:"vocabulary_path" env:"ZIPPY_POS_VOCABULARY"`
}

// LanguagesConfig holds language label overrides (ISO 639-3 code → label).
type LanguagesConfig struct {
	Names map[string]string `yaml:"names" env:"ZIPPY_LANGUAGE_NAMES"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ZIPPY_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"ZIPPY_LOG_FORMAT" env-default:"text"`
}
