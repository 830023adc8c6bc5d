// Package langcode labels dictionary files with their language pair.
package langcode

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/heartmarshall/zippy/internal/archive"
	"github.com/heartmarshall/zippy/internal/domain"
)

// defaultNames maps ISO 639-3 codes of the FreeDict catalogue to output
// labels.
var defaultNames = map[string]string{
	"afr": "afrikaans",
	"ara": "arabic",
	"ast": "asturian",
	"bre": "breton",
	"bul": "bulgarian",
	"cat": "catalan",
	"ces": "czech",
	"ckb": "sorani",
	"cym": "welsh",
	"dan": "danish",
	"deu": "german",
	"ell": "greek",
	"eng": "english",
	"epo": "esperanto",
	"fin": "finnish",
	"fra": "french",
	"gle": "irish",
	"hin": "hindi",
	"hrv": "croatian",
	"ita": "italian",
	"jpn": "japanese",
	"kha": "khasi",
	"kmr": "kurmanji",
	"lat": "latin",
	"nld": "dutch",
	"pol": "polish",
	"por": "portuguese",
	"rus": "russian",
	"spa": "spanish",
	"swe": "swedish",
	"swh": "swahili",
}

// Resolver maps file names to language pairs. It is immutable after
// construction.
type Resolver struct {
	names map[string]string
}

// NewResolver creates a Resolver over the built-in table, extended or
// overridden by extra (code → label).
func NewResolver(extra map[string]string) *Resolver {
	names := make(map[string]string, len(defaultNames)+len(extra))
	for code, name := range defaultNames {
		names[code] = name
	}
	for code, name := range extra {
		names[strings.ToLower(code)] = strings.ToLower(name)
	}
	return &Resolver{names: names}
}

// Codes extracts the source and target codes from a file name: the first
// two dash-separated three-letter segments of the base name, else its
// first two segments, else the base name for both sides.
func Codes(filename string) (source, target string) {
	parts := strings.Split(strings.ToLower(archive.BaseName(filename)), "-")

	var codes []string
	for _, p := range parts {
		if len(p) == 3 && isASCIILetters(p) {
			codes = append(codes, p)
			if len(codes) == 2 {
				return codes[0], codes[1]
			}
		}
	}
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return parts[0], parts[0]
}

// Resolve labels both sides of the dictionary in filename. Resolved is set
// when both codes have a known name; unknown codes label themselves.
func (r *Resolver) Resolve(filename string) domain.LanguagePair {
	src, tgt := Codes(filename)
	srcName, srcOK := r.lookup(src)
	tgtName, tgtOK := r.lookup(tgt)
	return domain.LanguagePair{
		SourceCode: src,
		TargetCode: tgt,
		SourceName: srcName,
		TargetName: tgtName,
		Resolved:   srcOK && tgtOK,
	}
}

func (r *Resolver) lookup(code string) (string, bool) {
	if name, ok := r.names[code]; ok {
		return name, true
	}
	if len(code) < 2 || len(code) > 3 || !isASCIILetters(code) {
		return code, false
	}
	base, err := language.ParseBase(code)
	if err != nil {
		return code, false
	}
	tag, err := language.Compose(base)
	if err != nil {
		return code, false
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code, false
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "_"), true
}

func isASCIILetters(s string) bool {
	for i := range len(s) {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return s != ""
}
