package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/zippy/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration
// and fills the parsed fields. Load calls it automatically; callers that
// change the raw fields afterwards (command-line overrides) call it again.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return fmt.Errorf("paths.input_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return fmt.Errorf("paths.output_dir must not be empty")
	}

	allowed, err := ParsePOSList(c.Filter.POSRaw)
	if err != nil {
		return fmt.Errorf("filter.pos: %w", err)
	}
	c.Filter.Allowed = allowed

	if c.Wordlist.MinRunes < 1 {
		return fmt.Errorf("wordlist.min_runes must be >= 1 (got %d)", c.Wordlist.MinRunes)
	}
	c.Wordlist.ExtraStopwords = SplitList(c.Wordlist.ExtraStopwordsRaw)

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error (got %q)", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

// ParsePOSList parses a comma-separated list of POS names ("n,adj,verb")
// into a set. "none" yields the empty set and "all" every canonical value.
func ParsePOSList(raw string) (domain.POSSet, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none":
		return domain.NewPOSSet(), nil
	case "all":
		return domain.FullPOS(), nil
	}
	return domain.ParsePOSSet(SplitList(raw))
}

// SplitList splits a comma-separated string, dropping blank items.
// An empty string returns a nil slice.
func SplitList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
