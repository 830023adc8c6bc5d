// Package flatfile parses gzip-compressed, line-oriented dictionaries (.dz).
// Pure function of the archive stream: no file system or output concerns.
//
// Records are grouped from lines:
//   - a blank line closes the current record;
//   - an indented line belongs to the current record's definition;
//   - an unindented line opens a new record, unless the current record has
//     only its headline, in which case it is that headline's translation
//     (the alternating "headword, translation" layout);
//   - "headword<TAB>definition" is a complete single-line record.
//
// Header and preamble records are routed to the archive's license metadata.
package flatfile

import (
	"bufio"
	"fmt"
	"iter"
	"strings"

	"github.com/heartmarshall/zippy/internal/app/extractor/inline"
	"github.com/heartmarshall/zippy/internal/archive"
	"github.com/heartmarshall/zippy/internal/domain"
)

// maxLineSize bounds a single line of the decompressed stream.
const maxLineSize = 16 << 20

// headerPrefixes mark a header line wherever it occurs.
var headerPrefixes = []string{
	"#", "00-database", "Author:", "Maintainer:", "Edition:", "Size:",
	"Publisher:", "Availability:", "Copyright", "This program", "Published",
	"ID#", "Series:", "Changelog:", "*", "Notes:", "Source(s):",
	"Database Status:", "The Project:",
}

// headerKeywords mark a preamble line, but only before the first entry.
var headerKeywords = []string{
	"freedict", "dictionary", "license", "copyright", "available",
	"foundation", "version", "ver.", "converted", "imported", "makefile",
	"initial", "michael bunk", "piotr bański", "conversion of tei",
	"tools/xsl", "manual clean-up", "stable",
}

// Parser extracts raw entries from a flat dictionary.
type Parser struct {
	tags inline.TagSet
}

// New creates a Parser. tags decides which parenthesized tokens are POS tags.
func New(tags inline.TagSet) *Parser {
	return &Parser{tags: tags}
}

type record struct {
	lines    []string
	complete bool
	indented bool
}

// Entries yields one RawEntry per definition segment. The only yielded error
// is a corrupt stream, after which iteration stops.
func (p *Parser) Entries(a *archive.Archive, st *domain.ParseStats) iter.Seq2[domain.RawEntry, error] {
	return func(yield func(domain.RawEntry, error) bool) {
		body, err := a.Body()
		if err != nil {
			yield(domain.RawEntry{}, err)
			return
		}

		var (
			cur     record
			index   int
			started bool
		)

		// emit handles one finished record; false stops the iteration.
		emit := func(r record) bool {
			if len(r.lines) == 0 {
				return true
			}
			if isHeader(r.lines[0], started) {
				st.Metadata++
				a.AppendLicense(strings.Join(r.lines, "\n"))
				return true
			}
			started = true
			index++
			st.Records++
			for _, e := range p.parseRecord(r, index) {
				if e.Headword == "" {
					st.Dropped++
					continue
				}
				st.Entries++
				if len(e.POS) > 0 {
					st.Tagged++
				}
				if !yield(e, nil) {
					return false
				}
			}
			return true
		}

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			indented := line != "" && (line[0] == ' ' || line[0] == '\t')

			switch {
			case strings.TrimSpace(line) == "":
				if !emit(cur) {
					return
				}
				cur = record{}
			case indented:
				cur.lines = append(cur.lines, line)
				cur.indented = true
			case len(cur.lines) == 1 && !cur.complete && !cur.indented:
				cur.lines = append(cur.lines, line)
				cur.complete = true
			default:
				if !emit(cur) {
					return
				}
				cur = record{lines: []string{line}}
				if strings.Contains(line, "\t") {
					cur.complete = true
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(domain.RawEntry{}, fmt.Errorf("%w: read %s: %w", domain.ErrArchiveCorrupt, a.Name, err))
			return
		}
		emit(cur)
	}
}

// parseRecord splits one record into raw entries. An entry with an empty
// headword signals a dropped record.
func (p *Parser) parseRecord(r record, index int) []domain.RawEntry {
	headline := r.lines[0]
	lines := r.lines
	if head, def, ok := strings.Cut(headline, "\t"); ok {
		headline = head
		lines = append([]string{head + " " + def}, r.lines[1:]...)
	}

	headword := Headword(headline)
	if headword == "" {
		return []domain.RawEntry{{Index: index}}
	}

	segs := inline.Parse(headword, lines, p.tags)
	out := make([]domain.RawEntry, 0, len(segs))
	for _, s := range segs {
		out = append(out, domain.RawEntry{
			Headword:     headword,
			POS:          s.Tags,
			Translations: s.Translations,
			Index:        index,
		})
	}
	return out
}

// Headword returns the headline text before any pronunciation, tag group or
// label.
func Headword(headline string) string {
	if i := strings.IndexAny(headline, "/<([\t"); i >= 0 {
		headline = headline[:i]
	}
	return domain.NormalizeText(headline)
}

func isHeader(headline string, started bool) bool {
	trimmed := strings.TrimSpace(headline)
	for _, prefix := range headerPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	if started || len(strings.Fields(trimmed)) < 3 {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
