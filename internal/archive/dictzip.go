package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/heartmarshall/zippy/internal/domain"
)

// MaxSegmentSize bounds a single dictd body segment.
const MaxSegmentSize = 16 << 20

// gzip header flags (RFC 1952).
const (
	flagHCRC    = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
)

type chunkSpan struct {
	offset int64
	size   int64
}

// Dictzip reads byte ranges of the uncompressed content of a dictzip file.
// With a random-access ("RA") extra field each chunk is inflated on its own;
// otherwise the whole stream is inflated once and kept in memory.
type Dictzip struct {
	r        io.ReaderAt
	chunkLen int64
	chunks   []chunkSpan

	plain []byte

	cached    int
	cachedBuf []byte
}

// NewDictzip parses the gzip header of r.
func NewDictzip(r io.ReaderAt, size int64) (*Dictzip, error) {
	hdr := make([]byte, 10)
	if _, err := r.ReadAt(hdr, 0); err != nil {
		return nil, fmt.Errorf("%w: dictzip header: %w", domain.ErrArchiveCorrupt, err)
	}
	if hdr[0] != gzipMagic[0] || hdr[1] != gzipMagic[1] || hdr[2] != 8 {
		return nil, fmt.Errorf("%w: dictzip: not a deflate gzip stream", domain.ErrArchiveCorrupt)
	}
	flags := hdr[3]
	pos := int64(10)

	d := &Dictzip{r: r, cached: -1}

	if flags&flagExtra != 0 {
		xlen := make([]byte, 2)
		if _, err := r.ReadAt(xlen, pos); err != nil {
			return nil, fmt.Errorf("%w: dictzip extra length: %w", domain.ErrArchiveCorrupt, err)
		}
		pos += 2
		extra := make([]byte, binary.LittleEndian.Uint16(xlen))
		if _, err := r.ReadAt(extra, pos); err != nil {
			return nil, fmt.Errorf("%w: dictzip extra field: %w", domain.ErrArchiveCorrupt, err)
		}
		pos += int64(len(extra))
		if err := d.parseExtra(extra); err != nil {
			return nil, err
		}
	}

	for _, flag := range []byte{flagName, flagComment} {
		if flags&flag == 0 {
			continue
		}
		n, err := skipCString(r, pos)
		if err != nil {
			return nil, fmt.Errorf("%w: dictzip header string: %w", domain.ErrArchiveCorrupt, err)
		}
		pos += n
	}
	if flags&flagHCRC != 0 {
		pos += 2
	}

	if d.chunks == nil {
		return d, d.inflateAll(size)
	}

	for i := range d.chunks {
		d.chunks[i].offset += pos
	}
	if last := d.chunks[len(d.chunks)-1]; last.offset+last.size > size {
		return nil, fmt.Errorf("%w: dictzip chunk table exceeds file size", domain.ErrArchiveCorrupt)
	}
	return d, nil
}

// parseExtra walks the extra subfields looking for the RA table.
// Chunk offsets are relative to the start of the deflate data here.
func (d *Dictzip) parseExtra(extra []byte) error {
	for len(extra) >= 4 {
		si1, si2 := extra[0], extra[1]
		n := int(binary.LittleEndian.Uint16(extra[2:4]))
		if 4+n > len(extra) {
			return fmt.Errorf("%w: dictzip subfield overruns extra field", domain.ErrArchiveCorrupt)
		}
		data := extra[4 : 4+n]
		extra = extra[4+n:]
		if si1 != 'R' || si2 != 'A' {
			continue
		}

		if len(data) < 6 {
			return fmt.Errorf("%w: dictzip RA field too short", domain.ErrArchiveCorrupt)
		}
		chlen := int64(binary.LittleEndian.Uint16(data[2:4]))
		count := int(binary.LittleEndian.Uint16(data[4:6]))
		if chlen == 0 || len(data) < 6+2*count {
			return fmt.Errorf("%w: dictzip RA table truncated", domain.ErrArchiveCorrupt)
		}

		d.chunkLen = chlen
		d.chunks = make([]chunkSpan, count)
		var off int64
		for i := range count {
			size := int64(binary.LittleEndian.Uint16(data[6+2*i:]))
			d.chunks[i] = chunkSpan{offset: off, size: size}
			off += size
		}
		if count == 0 {
			d.chunks = nil
		}
		return nil
	}
	return nil
}

func (d *Dictzip) inflateAll(size int64) error {
	zr, err := gzip.NewReader(io.NewSectionReader(d.r, 0, size))
	if err != nil {
		return fmt.Errorf("%w: dictzip: %w", domain.ErrArchiveCorrupt, err)
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return fmt.Errorf("%w: dictzip inflate: %w", domain.ErrArchiveCorrupt, err)
	}
	d.plain = plain
	return nil
}


// Segment returns length bytes of uncompressed content starting at offset.
// Ranges past the end of the body and undecodable chunks are reported as
// domain.ErrRecordMalformed.
func (d *Dictzip) Segment(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("%w: negative segment %d+%d", domain.ErrRecordMalformed, offset, length)
	}
	if length > MaxSegmentSize {
		return nil, fmt.Errorf("%w: segment length %d exceeds limit", domain.ErrRecordMalformed, length)
	}
	if length == 0 {
		return []byte{}, nil
	}

	if d.plain != nil || d.chunks == nil {
		if offset+length > int64(len(d.plain)) {
			return nil, fmt.Errorf("%w: segment %d+%d exceeds body of %d bytes",
				domain.ErrRecordMalformed, offset, length, len(d.plain))
		}
		return bytes.Clone(d.plain[offset : offset+length]), nil
	}

	end := offset + length
	first := offset / d.chunkLen
	last := (end - 1) / d.chunkLen
	if last >= int64(len(d.chunks)) {
		return nil, fmt.Errorf("%w: segment %d+%d exceeds %d chunks",
			domain.ErrRecordMalformed, offset, length, len(d.chunks))
	}

	out := make([]byte, 0, length)
	for i := first; i <= last; i++ {
		chunk, err := d.chunk(int(i))
		if err != nil {
			return nil, err
		}
		base := i * d.chunkLen
		lo := max(offset-base, 0)
		hi := min(end-base, d.chunkLen)
		if hi > int64(len(chunk)) {
			return nil, fmt.Errorf("%w: segment %d+%d truncated in chunk %d",
				domain.ErrRecordMalformed, offset, length, i)
		}
		out = append(out, chunk[lo:hi]...)
	}
	return out, nil
}

// chunk inflates chunk i. The most recent chunk is cached since adjacent
// index records usually share it.
func (d *Dictzip) chunk(i int) ([]byte, error) {
	if i == d.cached {
		return d.cachedBuf, nil
	}

	span := d.chunks[i]
	fr := flate.NewReader(io.NewSectionReader(d.r, span.offset, span.size))
	defer fr.Close()

	var buf bytes.Buffer
	buf.Grow(int(d.chunkLen))
	_, err := io.Copy(&buf, io.LimitReader(fr, d.chunkLen+1))
	// Chunks are flushed but not terminated, so running out of input at the
	// chunk boundary is expected.
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: inflate chunk %d: %w", domain.ErrRecordMalformed, i, err)
	}
	if int64(buf.Len()) > d.chunkLen {
		return nil, fmt.Errorf("%w: chunk %d inflates past %d bytes", domain.ErrRecordMalformed, i, d.chunkLen)
	}

	d.cached = i
	d.cachedBuf = buf.Bytes()
	return d.cachedBuf, nil
}

func skipCString(r io.ReaderAt, pos int64) (int64, error) {
	buf := make([]byte, 256)
	var n int64
	for {
		read, err := r.ReadAt(buf, pos+n)
		if i := bytes.IndexByte(buf[:read], 0); i >= 0 {
			return n + int64(i) + 1, nil
		}
		n += int64(read)
		if err != nil {
			return 0, err
		}
	}
}
