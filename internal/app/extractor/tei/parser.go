// Package tei parses TEI-XML lexicons (.src.tar.xz) as published by FreeDict.
// Each <entry> is decoded on its own, so one malformed entry does not take
// the rest of the document with it.
package tei

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/heartmarshall/zippy/internal/archive"
	"github.com/heartmarshall/zippy/internal/domain"
)

type entry struct {
	Forms    []form     `xml:"form"`
	GramGrps []gramGrp  `xml:"gramGrp"`
	Senses   []sense    `xml:"sense"`
	Trans    []legacyTr `xml:"trans"`
}

type form struct {
	Orths    []string  `xml:"orth"`
	GramGrps []gramGrp `xml:"gramGrp"`
	Forms    []form    `xml:"form"`
}

type gramGrp struct {
	POS    []string `xml:"pos"`
	Grams  []gram   `xml:"gram"`
	Gen    []string `xml:"gen"`
	Number []string `xml:"number"`
}

type gram struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type sense struct {
	GramGrps []gramGrp  `xml:"gramGrp"`
	Cits     []cit      `xml:"cit"`
	Trans    []legacyTr `xml:"trans"`
	Senses   []sense    `xml:"sense"`
}

type cit struct {
	Type   string   `xml:"type,attr"`
	Quotes []string `xml:"quote"`
}

// legacyTr is the pre-P5 FreeDict translation markup: <trans><tr>..</tr></trans>.
type legacyTr struct {
	Tr []string `xml:"tr"`
}

type header struct {
	Availability []struct {
		Inner []byte `xml:",innerxml"`
	} `xml:"fileDesc>publicationStmt>availability"`
}

// grammar is the POS and marker information in effect for a sense.
type grammar struct {
	pos     []string
	markers []string
}

func (g grammar) extend(groups []gramGrp) grammar {
	var pos, markers []string
	for _, gg := range groups {
		pos = append(pos, trimAll(gg.POS)...)
		markers = append(markers, trimAll(gg.Gen)...)
		markers = append(markers, trimAll(gg.Number)...)
		for _, gr := range gg.Grams {
			v := strings.TrimSpace(gr.Value)
			if v == "" {
				continue
			}
			switch strings.ToLower(gr.Type) {
			case "pos":
				pos = append(pos, v)
			case "gen", "gender", "num", "number":
				markers = append(markers, v)
			}
		}
	}
	if len(pos) == 0 {
		pos = g.pos
	}
	return grammar{pos: pos, markers: append(append([]string(nil), g.markers...), markers...)}
}

// Parser extracts raw entries from a TEI lexicon.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Entries yields one RawEntry per sense. The POS of a sense is its own
// grammatical group when present, otherwise the nearest enclosing one.
// An entry without senses yields a single RawEntry.
//
// The lexicon is the first .tei member of the bundle. An .xml member is used
// only when no .tei member exists and its root element is <TEI>.
func (p *Parser) Entries(a *archive.Archive, st *domain.ParseStats) iter.Seq2[domain.RawEntry, error] {
	return func(yield func(domain.RawEntry, error) bool) {
		var fallback []byte
		for m, err := range a.Members() {
			if err != nil {
				yield(domain.RawEntry{}, err)
				return
			}
			switch {
			case isLexicon(m, a.Name):
				p.parseDocument(m, a, st, yield)
				return
			case fallback == nil && strings.HasSuffix(strings.ToLower(m.Name), ".xml"):
				doc, err := readTEI(m)
				if err != nil {
					yield(domain.RawEntry{}, fmt.Errorf("%w: read %s: %w", domain.ErrArchiveCorrupt, m.Name, err))
					return
				}
				fallback = doc
			}
		}
		if fallback == nil {
			yield(domain.RawEntry{}, fmt.Errorf("%w: %s has no TEI document", domain.ErrArchiveCorrupt, a.Name))
			return
		}
		p.parseDocument(bytes.NewReader(fallback), a, st, yield)
	}
}

func isLexicon(m archive.Member, archiveName string) bool {
	return strings.HasSuffix(strings.ToLower(m.Name), ".tei") || m.Name == archiveName
}

// readTEI returns the whole member when its root element is <TEI>, and nil
// for any other XML document.
func readTEI(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	root, err := rootElement(io.TeeReader(r, &buf))
	if err != nil || root != "TEI" {
		return nil, nil
	}
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rootElement(r io.Reader) (string, error) {
	d := xml.NewDecoder(r)
	d.Strict = false
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

func (p *Parser) parseDocument(r io.Reader, a *archive.Archive, st *domain.ParseStats, yield func(domain.RawEntry, error) bool) bool {
	index := 0
	for span, err := range archive.Elements(r, "teiHeader", "entry") {
		if err != nil {
			yield(domain.RawEntry{}, err)
			return false
		}

		if bytes.HasPrefix(span, []byte("<teiHeader")) {
			var h header
			if err := xml.Unmarshal(span, &h); err == nil {
				for _, av := range h.Availability {
					a.AppendLicense(textContent(av.Inner))
				}
			}
			st.Metadata++
			continue
		}

		index++
		st.Records++
		var e entry
		if err := xml.Unmarshal(span, &e); err != nil {
			st.Skip(domain.NewRecordError(index, err.Error()))
			continue
		}

		headword := domain.NormalizeText(firstOrth(e.Forms))
		if headword == "" {
			st.Dropped++
			continue
		}

		for raw := range flatten(e, headword, index) {
			st.Entries++
			if len(raw.POS) > 0 {
				st.Tagged++
			}
			if !yield(raw, nil) {
				return false
			}
		}
	}
	return true
}

// flatten walks the sense tree of e depth-first.
func flatten(e entry, headword string, index int) iter.Seq[domain.RawEntry] {
	return func(yield func(domain.RawEntry) bool) {
		g := grammar{}
		for _, f := range e.Forms {
			g = g.extend(f.GramGrps)
		}
		g = g.extend(e.GramGrps)

		emit := func(g grammar, translations []string) bool {
			return yield(domain.RawEntry{
				Headword:     headword,
				POS:          g.pos,
				Translations: translations,
				Markers:      g.markers,
				Index:        index,
			})
		}

		var walk func(senses []sense, parent grammar) (bool, int)
		walk = func(senses []sense, parent grammar) (bool, int) {
			emitted := 0
			for _, s := range senses {
				sg := parent.extend(s.GramGrps)
				trans := translations(s.Cits, s.Trans)
				if len(trans) > 0 || len(s.Senses) == 0 {
					if !emit(sg, trans) {
						return false, emitted
					}
					emitted++
				}
				ok, n := walk(s.Senses, sg)
				emitted += n
				if !ok {
					return false, emitted
				}
			}
			return true, emitted
		}

		ok, n := walk(e.Senses, g)
		if ok && n == 0 {
			emit(g, translations(nil, e.Trans))
		}
	}
}

func translations(cits []cit, legacy []legacyTr) []string {
	var out []string
	for _, c := range cits {
		switch strings.ToLower(c.Type) {
		case "trans", "translation", "":
			for _, q := range c.Quotes {
				if q = domain.NormalizeText(q); q != "" {
					out = append(out, q)
				}
			}
		}
	}
	for _, l := range legacy {
		for _, tr := range l.Tr {
			if tr = domain.NormalizeText(tr); tr != "" {
				out = append(out, tr)
			}
		}
	}
	return out
}

func firstOrth(forms []form) string {
	for _, f := range forms {
		for _, o := range f.Orths {
			if strings.TrimSpace(o) != "" {
				return o
			}
		}
		if o := firstOrth(f.Forms); o != "" {
			return o
		}
	}
	return ""
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// textContent returns the character data of an XML fragment with
// whitespace collapsed.
func textContent(fragment []byte) string {
	d := xml.NewDecoder(bytes.NewReader(fragment))
	d.Strict = false
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			b.Write(cd)
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
