package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/heartmarshall/zippy/internal/domain"
)

// sniffLen is how many leading bytes are inspected for magic numbers.
const sniffLen = 512

// maxSniffMembers bounds how many tar headers are read while sniffing.
const maxSniffMembers = 64

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	utf8BOM   = []byte{0xef, 0xbb, 0xbf}
)

// Extensions lists the file suffixes recognized without sniffing.
var Extensions = []string{".dictd.tar.xz", ".src.tar.xz", ".dz"}

// HasKnownExtension reports whether name carries one of Extensions.
func HasKnownExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// detect determines the format of f. The extension decides when it is
// unambiguous; the content is sniffed otherwise. bare reports an
// uncompressed TEI document.
func detect(f *os.File, name string) (kind domain.FormatKind, bare bool, err error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("sniff %s: %w", name, err)
	}
	head = head[:n]

	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".dictd.tar.xz"):
		return domain.FormatDictd, false, expectMagic(head, xzMagic, name, "xz")
	case strings.HasSuffix(lower, ".src.tar.xz"):
		return domain.FormatTEI, false, expectMagic(head, xzMagic, name, "xz")
	case strings.HasSuffix(lower, ".dz"):
		return domain.FormatFlatFile, false, expectMagic(head, gzipMagic, name, "gzip")
	case strings.HasSuffix(lower, ".tei"):
		return domain.FormatTEI, true, nil
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return domain.FormatFlatFile, false, nil
	case bytes.HasPrefix(head, xzMagic):
		kind, err := sniffTar(f, name)
		return kind, false, err
	case looksLikeXML(head):
		return domain.FormatTEI, true, nil
	}
	return "", false, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
}

func expectMagic(head, magic []byte, name, container string) error {
	if !bytes.HasPrefix(head, magic) {
		return fmt.Errorf("%w: %s is not a %s stream", domain.ErrArchiveCorrupt, name, container)
	}
	return nil
}

// sniffTar reads member names from an xz-compressed tar until one of them
// identifies the layout.
func sniffTar(f *os.File, name string) (domain.FormatKind, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("sniff %s: %w", name, err)
	}
	xr, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		return "", fmt.Errorf("%w: %s: xz header: %w", domain.ErrArchiveCorrupt, name, err)
	}

	tr := tar.NewReader(xr)
	for range maxSniffMembers {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: %s: read tar: %w", domain.ErrArchiveCorrupt, name, err)
		}
		member := strings.ToLower(hdr.Name)
		switch {
		case strings.HasSuffix(member, ".index"), strings.HasSuffix(member, ".dict.dz"):
			return domain.FormatDictd, nil
		case strings.HasSuffix(member, ".tei"), strings.HasSuffix(member, ".xml"):
			return domain.FormatTEI, nil
		}
	}
	return "", fmt.Errorf("%w: %s: no dictionary member in tar", domain.ErrUnsupportedFormat, name)
}

func looksLikeXML(head []byte) bool {
	head = bytes.TrimPrefix(head, utf8BOM)
	head = bytes.TrimLeft(head, " \t\r\n")
	return bytes.HasPrefix(head, []byte("<?xml")) || bytes.HasPrefix(head, []byte("<TEI"))
}
