package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/heartmarshall/zippy/internal/domain"
)

// maxElementSize caps a single XML element span (matches the scanner
// buffer used for line-oriented inputs).
const maxElementSize = 16 << 20

// Elements streams the raw byte spans of the named top-level XML elements
// found in r, without decoding the document as a whole. A span that is not
// closed before the next named element starts is yielded as-is, ending where
// the next element begins, so a caller decoding it sees the error for that
// element alone. Yielded slices are only valid until the next iteration.
func Elements(r io.Reader, names ...string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxElementSize)
		sc.Split(splitElements(names))

		for sc.Scan() {
			if !yield(sc.Bytes(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(nil, fmt.Errorf("%w: split elements: %w", domain.ErrArchiveCorrupt, err))
		}
	}
}

func splitElements(names []string) bufio.SplitFunc {
	opens := make([][]byte, len(names))
	closes := make([][]byte, len(names))
	keep := 0
	for i, name := range names {
		opens[i] = []byte("<" + name)
		closes[i] = []byte("</" + name + ">")
		keep = max(keep, len(opens[i])+1)
	}

	return func(data []byte, atEOF bool) (int, []byte, error) {
		start, which := findOpen(data, opens, 0)
		if start < 0 {
			if atEOF {
				return len(data), nil, nil
			}
			// Keep a tail long enough to hold a split opening tag.
			if n := len(data) - keep; n > 0 {
				return n, nil, nil
			}
			return 0, nil, nil
		}

		end := -1
		if i := bytes.Index(data[start:], closes[which]); i >= 0 {
			end = start + i + len(closes[which])
		}
		next, _ := findOpen(data, opens, start+1)

		switch {
		case end >= 0 && (next < 0 || end <= next):
			return end, data[start:end], nil
		case next >= 0:
			return next, data[start:next], nil
		case atEOF:
			return len(data), data[start:], nil
		case start > 0:
			return start, nil, nil
		}
		return 0, nil, nil
	}
}

// findOpen returns the position of the earliest opening tag from opens at or
// after from, and which tag matched. A tag only matches when followed by
// whitespace, '>' or '/', so "<entry" does not match "<entryFree".
func findOpen(data []byte, opens [][]byte, from int) (int, int) {
	best, which := -1, -1
	for i, open := range opens {
		for pos := from; pos < len(data); {
			j := bytes.Index(data[pos:], open)
			if j < 0 {
				break
			}
			at := pos + j
			after := at + len(open)
			if after < len(data) && isTagBoundary(data[after]) {
				if best < 0 || at < best {
					best, which = at, i
				}
				break
			}
			pos = at + 1
		}
	}
	return best, which
}

func isTagBoundary(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '>', '/':
		return true
	}
	return false
}
