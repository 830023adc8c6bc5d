package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Output is one wordlist file to write.
type Output struct {
	Path  string
	Words []string
}

// WriteAll writes every output, one word per line, UTF-8. Each file is
// written under a temporary name first, and none is renamed into place
// until all of them are written. A failed rename removes the files already
// renamed, so a pair is never left half written.
func WriteAll(outputs ...Output) error {
	temps := make([]string, 0, len(outputs))
	discard := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, o := range outputs {
		tmp, err := writeTemp(o.Path, o.Words)
		if err != nil {
			discard()
			return err
		}
		temps = append(temps, tmp)
	}

	for i, tmp := range temps {
		if err := os.Rename(tmp, outputs[i].Path); err != nil {
			for _, done := range outputs[:i] {
				os.Remove(done.Path)
			}
			temps = temps[i:]
			discard()
			return fmt.Errorf("rename %s: %w", outputs[i].Path, err)
		}
	}
	return nil
}

func writeTemp(path string, words []string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	w := bufio.NewWriter(tmp)
	for _, word := range words {
		if _, err := w.WriteString(word); err != nil {
			break
		}
		if err := w.WriteByte('\n'); err != nil {
			break
		}
	}
	if err := errors.Join(w.Flush(), tmp.Close()); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}
	return tmp.Name(), nil
}
