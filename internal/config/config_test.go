package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heartmarshall/zippy/internal/domain"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "zippy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
paths:
  input_dir: "in"
  output_dir: "out"

filter:
  pos: "n, adj"
  exclude_unknown: true
  keep_plurals: true
  skip_english: true

wordlist:
  min_runes: 3
  keep_stopwords: true
  extra_stopwords: "le, la, les"

pos:
  vocabulary_path: "vocab.toml"

languages:
  names:
    tlh: klingon

log:
  level: "debug"
  format: "json"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Paths.InputDir != "in" || cfg.Paths.OutputDir != "out" {
		t.Errorf("paths = %+v", cfg.Paths)
	}
	if want := domain.NewPOSSet(domain.PartOfSpeechNoun, domain.PartOfSpeechAdjective); cfg.Filter.Allowed != want {
		t.Errorf("filter.allowed = %s, want %s", cfg.Filter.Allowed, want)
	}
	if !cfg.Filter.ExcludeUnknown || !cfg.Filter.KeepPlurals || !cfg.Filter.SkipEnglish {
		t.Errorf("filter toggles = %+v, want all true", cfg.Filter)
	}
	if cfg.Wordlist.MinRunes != 3 {
		t.Errorf("wordlist.min_runes = %d, want 3", cfg.Wordlist.MinRunes)
	}
	if !cfg.Wordlist.KeepStopwords {
		t.Error("wordlist.keep_stopwords = false, want true")
	}
	if got := strings.Join(cfg.Wordlist.ExtraStopwords, "|"); got != "le|la|les" {
		t.Errorf("wordlist.extra_stopwords = %q", got)
	}
	if cfg.POS.VocabularyPath != "vocab.toml" {
		t.Errorf("pos.vocabulary_path = %q", cfg.POS.VocabularyPath)
	}
	if cfg.Languages.Names["tlh"] != "klingon" {
		t.Errorf("languages.names = %v", cfg.Languages.Names)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ZIPPY_CONFIG", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Paths.InputDir != "dictionaries" {
		t.Errorf("paths.input_dir = %q, want dictionaries", cfg.Paths.InputDir)
	}
	if cfg.Paths.OutputDir != "wordlists" {
		t.Errorf("paths.output_dir = %q, want wordlists", cfg.Paths.OutputDir)
	}
	if cfg.Filter.Allowed != domain.ContentPOS() {
		t.Errorf("filter.allowed = %s, want %s", cfg.Filter.Allowed, domain.ContentPOS())
	}
	if cfg.Filter.ExcludeUnknown || cfg.Filter.KeepPlurals || cfg.Filter.SkipEnglish {
		t.Errorf("filter toggles = %+v, want all false", cfg.Filter)
	}
	if cfg.Wordlist.MinRunes != 2 {
		t.Errorf("wordlist.min_runes = %d, want 2", cfg.Wordlist.MinRunes)
	}
	if cfg.Wordlist.KeepStopwords {
		t.Error("wordlist.keep_stopwords = true, want false")
	}
	if cfg.Wordlist.ExtraStopwords != nil {
		t.Errorf("wordlist.extra_stopwords = %v, want nil", cfg.Wordlist.ExtraStopwords)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ZIPPY_CONFIG", writeYAML(t, dir, validYAML))
	t.Setenv("ZIPPY_OUTPUT_DIR", "/tmp/lists")
	t.Setenv("ZIPPY_POS", "verb")
	t.Setenv("ZIPPY_SKIP_ENGLISH", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Paths.OutputDir != "/tmp/lists" {
		t.Errorf("paths.output_dir = %q, want /tmp/lists", cfg.Paths.OutputDir)
	}
	if cfg.Paths.InputDir != "in" {
		t.Errorf("paths.input_dir = %q, want in", cfg.Paths.InputDir)
	}
	if cfg.Filter.Allowed != domain.NewPOSSet(domain.PartOfSpeechVerb) {
		t.Errorf("filter.allowed = %s, want {VERB}", cfg.Filter.Allowed)
	}
	if cfg.Filter.SkipEnglish {
		t.Error("filter.skip_english = true, want env override false")
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}

	t.Setenv("ZIPPY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing ZIPPY_CONFIG file")
	}
}

func TestLoad_InvalidYAMLValue(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "filter:\n  pos: \"n, gerund\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown POS")
	}
}

func validConfig() Config {
	return Config{
		Paths:    PathsConfig{InputDir: "in", OutputDir: "out"},
		Filter:   FilterConfig{POSRaw: "noun"},
		Wordlist: WordlistConfig{MinRunes: 1},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty input dir", func(c *Config) { c.Paths.InputDir = " " }, "paths.input_dir"},
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }, "paths.output_dir"},
		{"bad pos", func(c *Config) { c.Filter.POSRaw = "noun,thing" }, "filter.pos"},
		{"zero min runes", func(c *Config) { c.Wordlist.MinRunes = 0 }, "min_runes"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log: level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log: format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParsePOSList(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.POSSet
		wantErr bool
	}{
		{"n,v", domain.NewPOSSet(domain.PartOfSpeechNoun, domain.PartOfSpeechVerb), false},
		{" ADJ , adverb ", domain.NewPOSSet(domain.PartOfSpeechAdjective, domain.PartOfSpeechAdverb), false},
		{"none", domain.NewPOSSet(), false},
		{"All", domain.FullPOS(), false},
		{"", domain.NewPOSSet(), false},
		{"noun,gerund", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePOSList(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePOSList(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList(""); got != nil {
		t.Errorf("SplitList(\"\") = %v, want nil", got)
	}
	if got := strings.Join(SplitList(" a, ,b ,"), "|"); got != "a|b" {
		t.Errorf("SplitList = %q, want a|b", got)
	}
}
