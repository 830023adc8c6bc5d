package pos

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/heartmarshall/zippy/internal/domain"
)

// Table is a set of tag meanings scoped to a format and/or language.
// Empty Format or Lang means "any".
type Table struct {
	Format domain.FormatKind
	Lang   string
	Tags   map[string]Tag
}

// overrideFile is the TOML layout of a vocabulary extension file:
//
//	[[table]]
//	lang = "deu"
//	format = "tei"        # optional
//	[table.tags]
//	zw = "verb"
//	mask = "gender"
type overrideFile struct {
	Tables []overrideTable `toml:"table"`
}

type overrideTable struct {
	Format string            `toml:"format"`
	Lang   string            `toml:"lang"`
	Tags   map[string]string `toml:"tags"`
}

// LoadTables reads a TOML vocabulary extension file.
func LoadTables(path string) ([]Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	tables, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("vocabulary file %s: %w", path, err)
	}
	return tables, nil
}

// ParseTables decodes the TOML layout documented on overrideFile.
func ParseTables(data []byte) ([]Table, error) {
	var file overrideFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	tables := make([]Table, 0, len(file.Tables))
	for i, raw := range file.Tables {
		t := Table{Lang: strings.TrimSpace(raw.Lang), Tags: make(map[string]Tag, len(raw.Tags))}
		if raw.Format != "" {
			kind, err := domain.ParseFormatKind(raw.Format)
			if err != nil {
				return nil, fmt.Errorf("table %d: %w", i, err)
			}
			t.Format = kind
		}
		for token, meaning := range raw.Tags {
			tag, err := ParseTag(meaning)
			if err != nil {
				return nil, fmt.Errorf("table %d: tag %q: %w", i, token, err)
			}
			t.Tags[token] = tag
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// ParseTag resolves a meaning name: a part of speech ("noun", "adj", ...)
// or one of "gender", "plural", "singular".
func ParseTag(name string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gender":
		return gender, nil
	case "plural":
		return plural, nil
	case "singular", "number":
		return singular, nil
	}
	p, err := domain.ParsePartOfSpeech(name)
	if err != nil {
		return Tag{}, err
	}
	if p == domain.PartOfSpeechUnknown {
		return Tag{}, fmt.Errorf("%q cannot be assigned to a tag", name)
	}
	return posTag(p), nil
}
