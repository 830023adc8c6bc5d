// Package archive opens dictionary files, detects their format and exposes
// their contents lazily: a decompressed stream for gzip-based files, a member
// iterator for tar.xz bundles and a random-access reader for dictzip bodies.
// It never interprets lexical content.
package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"github.com/heartmarshall/zippy/internal/domain"
)

// maxMetadataMember caps the size of license/readme members captured into
// Metadata.
const maxMetadataMember = 256 << 10

// Metadata is optional information embedded in an archive.
type Metadata struct {
	License string
	// LanguageHint is the part of the file name that names the language
	// pair ("freedict-eng-ces-0.1.3" for freedict-eng-ces-0.1.3.dictd.tar.xz).
	LanguageHint string
}

// Archive is an opened, format-tagged handle over one dictionary file.
// It must be closed by the caller.
type Archive struct {
	Name     string
	Path     string
	Kind     domain.FormatKind
	Metadata Metadata

	f       *os.File
	size    int64
	bare    bool // an uncompressed TEI document rather than a tar.xz bundle
	closers []io.Closer
}

// Member is one regular file inside a tar-based archive. Its Reader is only
// valid until the iteration advances.
type Member struct {
	Name string
	Size int64
	io.Reader
}

// Open detects the format of the file at path and returns an open handle.
// It fails with domain.ErrUnsupportedFormat when neither the extension nor
// the content match a known signature, and with domain.ErrArchiveCorrupt
// when the extension promises a container the content does not carry.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFormat, path)
	}

	name := filepath.Base(path)
	kind, bare, err := detect(f, name)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Archive{
		Name: name,
		Path: path,
		Kind: kind,
		Metadata: Metadata{
			LanguageHint: BaseName(name),
		},
		f:    f,
		size: info.Size(),
		bare: bare,
	}, nil
}

// BaseName returns the file name up to its first dot.
func BaseName(name string) string {
	name = filepath.Base(name)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// Close releases every stream opened from the archive and the file itself.
func (a *Archive) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.f != nil {
		if err := a.f.Close(); err != nil {
			errs = append(errs, err)
		}
		a.f = nil
	}
	return errors.Join(errs...)
}

// AppendLicense adds a block of license or header text to the metadata.
func (a *Archive) AppendLicense(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if a.Metadata.License != "" {
		a.Metadata.License += "\n"
	}
	a.Metadata.License += text
}

// Body returns the decompressed stream of a flat gzip dictionary.
func (a *Archive) Body() (io.Reader, error) {
	if a.Kind != domain.FormatFlatFile {
		return nil, fmt.Errorf("body: %s archive has no flat body", a.Kind)
	}
	if err := a.rewind(); err != nil {
		return nil, err
	}

	zr, err := gzip.NewReader(bufio.NewReader(a.f))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip header: %w", domain.ErrArchiveCorrupt, err)
	}
	a.closers = append(a.closers, zr)
	return zr, nil
}

// Members enumerates the regular files of a tar.xz archive in stored order.
// A bare TEI document is presented as a single member. Small license and
// readme members are captured into Metadata before being yielded.
func (a *Archive) Members() iter.Seq2[Member, error] {
	return func(yield func(Member, error) bool) {
		if a.Kind == domain.FormatFlatFile {
			yield(Member{}, fmt.Errorf("members: flat archive has no members"))
			return
		}
		if err := a.rewind(); err != nil {
			yield(Member{}, err)
			return
		}

		if a.bare {
			yield(Member{Name: a.Name, Size: a.size, Reader: bufio.NewReader(a.f)}, nil)
			return
		}

		xr, err := xz.NewReader(bufio.NewReader(a.f))
		if err != nil {
			yield(Member{}, fmt.Errorf("%w: xz header: %w", domain.ErrArchiveCorrupt, err))
			return
		}

		tr := tar.NewReader(xr)
		for {
			hdr, err := tr.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Member{}, fmt.Errorf("%w: read tar: %w", domain.ErrArchiveCorrupt, err))
				return
			}
			if hdr.Typeflag != tar.TypeReg {
				continue
			}

			m := Member{Name: hdr.Name, Size: hdr.Size, Reader: tr}
			if isMetadataMember(hdr.Name) && hdr.Size <= maxMetadataMember {
				data, err := io.ReadAll(tr)
				if err != nil {
					yield(Member{}, fmt.Errorf("%w: read %s: %w", domain.ErrArchiveCorrupt, hdr.Name, err))
					return
				}
				a.AppendLicense(string(data))
				m.Reader = bytes.NewReader(data)
			}

			if !yield(m, nil) {
				return
			}
		}
	}
}

func (a *Archive) rewind() error {
	if a.f == nil {
		return fmt.Errorf("archive %s is closed", a.Name)
	}
	if _, err := a.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind archive: %w", err)
	}
	return nil
}

func isMetadataMember(name string) bool {
	base := strings.ToUpper(path.Base(name))
	for _, prefix := range []string{"COPYING", "LICENSE", "LICENCE"} {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return false
}
