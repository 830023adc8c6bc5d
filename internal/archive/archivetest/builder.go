// Package archivetest builds dictionary fixtures (flat gzip, dictzip, dictd
// and TEI tar.xz bundles) at test time.
package archivetest

import (
	"archive/tar"
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// DefaultChunkLen is the dictzip chunk length used by WriteDictd. It is kept
// small so that fixtures span several chunks.
const DefaultChunkLen = 64

const b64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// Member is a file to place inside a tar bundle.
type Member struct {
	Name string
	Data []byte
}

// DictdEntry is one headword and its definition text.
type DictdEntry struct {
	Headword   string
	Definition string
}

// WriteFile writes data under dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("archivetest: write %s: %v", name, err)
	}
	return path
}

// Gzip compresses data as a single plain gzip member.
func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("archivetest: gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("archivetest: gzip close: %v", err)
	}
	return buf.Bytes()
}

// Dictzip compresses data in independently inflatable chunks of chunkLen
// bytes and records them in a gzip "RA" extra field.
func Dictzip(t testing.TB, data []byte, chunkLen int) []byte {
	t.Helper()

	var chunks [][]byte
	for off := 0; off < len(data) || off == 0; off += chunkLen {
		end := min(off+chunkLen, len(data))
		last := end == len(data)

		var buf bytes.Buffer
		fw, err := flate.NewWriter(&buf, flate.BestCompression)
		if err != nil {
			t.Fatalf("archivetest: flate writer: %v", err)
		}
		if _, err := fw.Write(data[off:end]); err != nil {
			t.Fatalf("archivetest: flate write: %v", err)
		}
		if last {
			err = fw.Close()
		} else {
			err = fw.Flush()
		}
		if err != nil {
			t.Fatalf("archivetest: flate flush: %v", err)
		}
		chunks = append(chunks, buf.Bytes())
		if last {
			break
		}
	}

	ra := make([]byte, 6+2*len(chunks))
	binary.LittleEndian.PutUint16(ra[0:], 1)
	binary.LittleEndian.PutUint16(ra[2:], uint16(chunkLen))
	binary.LittleEndian.PutUint16(ra[4:], uint16(len(chunks)))
	for i, c := range chunks {
		binary.LittleEndian.PutUint16(ra[6+2*i:], uint16(len(c)))
	}

	extra := make([]byte, 4, 4+len(ra))
	extra[0], extra[1] = 'R', 'A'
	binary.LittleEndian.PutUint16(extra[2:], uint16(len(ra)))
	extra = append(extra, ra...)

	var out bytes.Buffer
	out.Write([]byte{0x1f, 0x8b, 8, 1 << 2, 0, 0, 0, 0, 2, 3})
	xlen := make([]byte, 2)
	binary.LittleEndian.PutUint16(xlen, uint16(len(extra)))
	out.Write(xlen)
	out.Write(extra)
	for _, c := range chunks {
		out.Write(c)
	}

	trailer := make([]byte, 8)
	binary.LittleEndian.PutUint32(trailer[0:], crc32.ChecksumIEEE(data))
	binary.LittleEndian.PutUint32(trailer[4:], uint32(len(data)))
	out.Write(trailer)
	return out.Bytes()
}

// TarXz bundles members into an xz-compressed tar.
func TarXz(t testing.TB, members ...Member) []byte {
	t.Helper()

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	for _, m := range members {
		hdr := &tar.Header{Name: m.Name, Mode: 0o644, Size: int64(len(m.Data)), Typeflag: tar.TypeReg}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatalf("archivetest: tar header %s: %v", m.Name, err)
		}
		if _, err := tw.Write(m.Data); err != nil {
			t.Fatalf("archivetest: tar write %s: %v", m.Name, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("archivetest: tar close: %v", err)
	}

	var out bytes.Buffer
	xw, err := xz.NewWriter(&out)
	if err != nil {
		t.Fatalf("archivetest: xz writer: %v", err)
	}
	if _, err := xw.Write(tarBuf.Bytes()); err != nil {
		t.Fatalf("archivetest: xz write: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("archivetest: xz close: %v", err)
	}
	return out.Bytes()
}

// EncodeNumber renders n in the dictd index base64 digit encoding.
func EncodeNumber(n int64) string {
	if n == 0 {
		return "A"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{b64Alphabet[n%64]}, digits...)
		n /= 64
	}
	return string(digits)
}

// Dictd renders entries as a dictd index and an uncompressed body. Each
// definition is stored verbatim, followed by a newline.
func Dictd(entries []DictdEntry) (index, body []byte) {
	var idx, dict bytes.Buffer
	for _, e := range entries {
		text := e.Definition + "\n"
		idx.WriteString(e.Headword + "\t" + EncodeNumber(int64(dict.Len())) + "\t" + EncodeNumber(int64(len(text))) + "\n")
		dict.WriteString(text)
	}
	return idx.Bytes(), dict.Bytes()
}

// WriteDictd writes a .dictd.tar.xz bundle holding db.index and db.dict.dz
// (plus any extra members) and returns its path.
func WriteDictd(t testing.TB, dir, fileName, db string, entries []DictdEntry, extra ...Member) string {
	t.Helper()
	index, body := Dictd(entries)
	members := append([]Member{
		{Name: db + "/" + db + ".index", Data: index},
		{Name: db + "/" + db + ".dict.dz", Data: Dictzip(t, body, DefaultChunkLen)},
	}, extra...)
	return WriteFile(t, dir, fileName, TarXz(t, members...))
}

// WriteTEI writes a .src.tar.xz bundle holding db/db.tei with the given
// document and returns its path.
func WriteTEI(t testing.TB, dir, fileName, db, document string, extra ...Member) string {
	t.Helper()
	members := append([]Member{{Name: db + "/" + db + ".tei", Data: []byte(document)}}, extra...)
	return WriteFile(t, dir, fileName, TarXz(t, members...))
}

// WriteFlat writes a gzip-compressed flat dictionary and returns its path.
func WriteFlat(t testing.TB, dir, fileName, content string) string {
	t.Helper()
	return WriteFile(t, dir, fileName, Gzip(t, []byte(content)))
}

// TEIDocument wraps entry markup in a minimal TEI document with a header.
func TEIDocument(availability string, entries ...string) string {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<TEI xmlns="http://www.tei-c.org/ns/1.0">` + "\n")
	b.WriteString("<teiHeader><fileDesc><titleStmt><title>Test Dictionary</title></titleStmt>")
	b.WriteString("<publicationStmt><availability status=\"free\"><p>" + availability + "</p></availability></publicationStmt>")
	b.WriteString("</fileDesc></teiHeader>\n<text><body>\n")
	for _, e := range entries {
		b.WriteString(e)
		b.WriteString("\n")
	}
	b.WriteString("</body></text></TEI>\n")
	return b.String()
}
