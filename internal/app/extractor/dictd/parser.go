// Package dictd parses dictd bundles (.dictd.tar.xz): a tab-separated index
// of headword, offset and length paired with a dictzip-compressed body.
package dictd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/heartmarshall/zippy/internal/app/extractor/inline"
	"github.com/heartmarshall/zippy/internal/archive"
	"github.com/heartmarshall/zippy/internal/domain"
)

const b64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var b64Value = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := range len(b64Alphabet) {
		t[b64Alphabet[i]] = int8(i)
	}
	return t
}()

// metadataPrefix marks index entries that describe the database itself.
const metadataPrefix = "00-database"

// IndexRecord is one parsed line of a dictd index.
type IndexRecord struct {
	Headword string
	Offset   int64
	Length   int64
}

// IsMetadata reports whether the record describes the database rather than
// a word.
func (r IndexRecord) IsMetadata() bool {
	return strings.HasPrefix(r.Headword, metadataPrefix) || strings.HasPrefix(r.Headword, "00database")
}

// ParseIndexLine parses "headword<TAB>offset<TAB>length" with offset and
// length in dictd base64 digits.
func ParseIndexLine(line string) (IndexRecord, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return IndexRecord{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	offset, err := DecodeNumber(fields[1])
	if err != nil {
		return IndexRecord{}, fmt.Errorf("offset: %w", err)
	}
	length, err := DecodeNumber(fields[2])
	if err != nil {
		return IndexRecord{}, fmt.Errorf("length: %w", err)
	}
	return IndexRecord{Headword: fields[0], Offset: offset, Length: length}, nil
}

// DecodeNumber decodes a dictd base64 number (most significant digit first).
func DecodeNumber(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 10 {
		return 0, fmt.Errorf("bad number %q", s)
	}
	var n int64
	for i := range len(s) {
		v := b64Value[s[i]]
		if v < 0 {
			return 0, fmt.Errorf("bad digit %q in %q", s[i], s)
		}
		n = n<<6 | int64(v)
	}
	return n, nil
}

// body yields uncompressed byte ranges of the definitions.
type body interface {
	Segment(offset, length int64) ([]byte, error)
}

// plainBody serves an uncompressed .dict member.
type plainBody []byte

func (b plainBody) Segment(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > int64(len(b)) {
		return nil, fmt.Errorf("%w: segment %d+%d exceeds body of %d bytes", domain.ErrRecordMalformed, offset, length, len(b))
	}
	return b[offset : offset+length], nil
}

// Parser extracts raw entries from a dictd bundle.
type Parser struct {
	tags inline.TagSet
}

// New creates a Parser. tags decides which parenthesized tokens are POS tags.
func New(tags inline.TagSet) *Parser {
	return &Parser{tags: tags}
}

// Entries yields one RawEntry per definition segment, in index order.
// Index lines that cannot be decoded and segments outside the body are
// counted as malformed and skipped.
func (p *Parser) Entries(a *archive.Archive, st *domain.ParseStats) iter.Seq2[domain.RawEntry, error] {
	return func(yield func(domain.RawEntry, error) bool) {
		index, b, err := load(a)
		if err != nil {
			yield(domain.RawEntry{}, err)
			return
		}

		scanner := bufio.NewScanner(bytes.NewReader(index))
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		n := 0
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			n++

			rec, err := ParseIndexLine(line)
			if err != nil {
				st.Records++
				st.Skip(domain.NewRecordError(n, "index: "+err.Error()))
				continue
			}
			if rec.IsMetadata() {
				st.Metadata++
				if text, err := b.Segment(rec.Offset, rec.Length); err == nil {
					a.AppendLicense(metadataText(rec.Headword, string(text)))
				}
				continue
			}
			st.Records++

			text, err := b.Segment(rec.Offset, rec.Length)
			if err != nil {
				st.Skip(domain.NewRecordError(n, err.Error()))
				continue
			}

			headword := domain.NormalizeText(rec.Headword)
			if headword == "" {
				st.Dropped++
				continue
			}
			for _, seg := range inline.Parse(headword, strings.Split(string(text), "\n"), p.tags) {
				st.Entries++
				if len(seg.Tags) > 0 {
					st.Tagged++
				}
				e := domain.RawEntry{
					Headword:     headword,
					POS:          seg.Tags,
					Translations: seg.Translations,
					Index:        n,
				}
				if !yield(e, nil) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(domain.RawEntry{}, fmt.Errorf("%w: read index: %w", domain.ErrArchiveCorrupt, err))
		}
	}
}

// load collects the index and body members of the bundle.
func load(a *archive.Archive) ([]byte, body, error) {
	var (
		index []byte
		b     body
	)
	for m, err := range a.Members() {
		if err != nil {
			return nil, nil, err
		}
		switch {
		case strings.HasSuffix(m.Name, ".index") && index == nil:
			data, err := io.ReadAll(m)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: read %s: %w", domain.ErrArchiveCorrupt, m.Name, err)
			}
			index = data
		case strings.HasSuffix(m.Name, ".dict.dz") && b == nil:
			data, err := io.ReadAll(m)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: read %s: %w", domain.ErrArchiveCorrupt, m.Name, err)
			}
			dz, err := archive.NewDictzip(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				return nil, nil, fmt.Errorf("body %s: %w", m.Name, err)
			}
			b = dz
		case strings.HasSuffix(m.Name, ".dict") && b == nil:
			data, err := io.ReadAll(m)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: read %s: %w", domain.ErrArchiveCorrupt, m.Name, err)
			}
			b = plainBody(data)
		}
	}
	if index == nil {
		return nil, nil, fmt.Errorf("%w: %s has no .index member", domain.ErrArchiveCorrupt, a.Name)
	}
	if b == nil {
		return nil, nil, fmt.Errorf("%w: %s has no .dict.dz member", domain.ErrArchiveCorrupt, a.Name)
	}
	return index, b, nil
}

// metadataText drops the leading "00-database-xxx" line dictfmt repeats in
// metadata bodies.
func metadataText(headword, text string) string {
	first, rest, ok := strings.Cut(text, "\n")
	if ok && strings.TrimSpace(first) == headword {
		return rest
	}
	return text
}
