// Package extractor turns dictionary archives into per-language wordlists:
// archive → format parser → POS normalizer → content filter → assembler.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/zippy/internal/app/extractor/dictd"
	"github.com/heartmarshall/zippy/internal/app/extractor/filter"
	"github.com/heartmarshall/zippy/internal/app/extractor/flatfile"
	"github.com/heartmarshall/zippy/internal/app/extractor/inline"
	"github.com/heartmarshall/zippy/internal/app/extractor/langcode"
	"github.com/heartmarshall/zippy/internal/app/extractor/license"
	"github.com/heartmarshall/zippy/internal/app/extractor/pos"
	"github.com/heartmarshall/zippy/internal/app/extractor/tei"
	"github.com/heartmarshall/zippy/internal/app/extractor/wordlist"
	"github.com/heartmarshall/zippy/internal/archive"
	"github.com/heartmarshall/zippy/internal/domain"
)

// ErrNoDictionaries is returned by ProcessAll when the input directory holds
// no file with a known dictionary extension.
var ErrNoDictionaries = errors.New("no dictionaries found")

// parser reads the raw entries of one archive.
type parser interface {
	Entries(a *archive.Archive, st *domain.ParseStats) iter.Seq2[domain.RawEntry, error]
}

func newParser(kind domain.FormatKind, tags inline.TagSet) (parser, error) {
	switch kind {
	case domain.FormatFlatFile:
		return flatfile.New(tags), nil
	case domain.FormatDictd:
		return dictd.New(tags), nil
	case domain.FormatTEI:
		return tei.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, kind)
	}
}

// Pipeline extracts wordlists from dictionaries, one at a time.
type Pipeline struct {
	log     *slog.Logger
	cfg     Config
	vocab   *pos.Vocabulary
	langs   *langcode.Resolver
	title   cases.Caser
	results []Result
}

// NewPipeline creates a new Pipeline. vocab and langs are shared read-only.
func NewPipeline(log *slog.Logger, cfg Config, vocab *pos.Vocabulary, langs *langcode.Resolver) *Pipeline {
	return &Pipeline{
		log:   log,
		cfg:   cfg,
		vocab: vocab,
		langs: langs,
		title: cases.Title(language.English),
	}
}

// Results returns per-dictionary results in processing order.
func (p *Pipeline) Results() []Result {
	return p.results
}

// HasErrors returns true if any dictionary failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Discover lists the dictionaries in the input directory, sorted by name.
func (p *Pipeline) Discover() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !archive.HasKnownExtension(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(p.cfg.InputDir, e.Name()))
	}
	return files, nil
}

// ProcessAll extracts every dictionary in the input directory. A failing
// dictionary is recorded in Results and does not stop the batch; the
// context is checked between dictionaries.
func (p *Pipeline) ProcessAll(ctx context.Context) error {
	files, err := p.Discover()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDictionaries, p.cfg.InputDir)
	}

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("process dictionaries: %w", err)
		}
		p.process(path)
		p.log.Info("dictionary done", slog.Int("done", i+1), slog.Int("total", len(files)))
	}

	p.log.Info("batch completed", slog.Int("dictionaries", len(files)))
	return nil
}

// ProcessFile extracts a single dictionary. A bare file name that does not
// exist as given is looked up in the input directory.
func (p *Pipeline) ProcessFile(ctx context.Context, name string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("process dictionary: %w", err)
	}
	path := name
	if _, err := os.Stat(path); err != nil && !filepath.IsAbs(name) {
		if candidate := filepath.Join(p.cfg.InputDir, name); fileExists(candidate) {
			path = candidate
		}
	}
	res := p.process(path)
	return res, res.Err
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// process runs one dictionary and records its result.
func (p *Pipeline) process(path string) Result {
	start := time.Now()
	res := Result{RunID: uuid.New(), File: filepath.Base(path)}
	log := p.log.With(slog.String("run_id", res.RunID.String()), slog.String("file", res.File))
	log.Info("starting dictionary")

	res.Err = p.extract(path, &res, log)
	res.Duration = time.Since(start)
	p.results = append(p.results, res)

	switch {
	case res.Err != nil:
		log.Error("dictionary failed",
			slog.String("error", res.Err.Error()),
			slog.Duration("duration", res.Duration),
		)
	case res.Warning != nil:
		log.Warn("dictionary yielded no words",
			slog.String("format", res.Kind.String()),
			slog.Int("records", res.Stats.Records),
			slog.Int("malformed", res.Stats.Malformed),
			slog.Int("dropped", res.Stats.Dropped),
		)
	default:
		log.Info("dictionary processed",
			slog.String("format", res.Kind.String()),
			slog.String("source_language", p.displayName(res.Pair.SourceName)),
			slog.String("target_language", p.displayName(res.Pair.TargetName)),
			slog.Int("records", res.Stats.Records),
			slog.Int("entries", res.Stats.Entries),
			slog.Int("malformed", res.Stats.Malformed),
			slog.Int("dropped", res.Stats.Dropped),
			slog.Int("filtered", res.Filtered),
			slog.Int("kept", res.Kept),
			slog.Float64("tagged_ratio", res.Stats.TaggedRatio()),
			slog.Int("source_words", res.SourceWords),
			slog.Int("target_words", res.TargetWords),
			slog.String("license", res.License),
			slog.Duration("duration", res.Duration),
		)
	}
	return res
}

func (p *Pipeline) extract(path string, res *Result, log *slog.Logger) error {
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	res.Kind = a.Kind
	res.Pair = p.langs.Resolve(a.Metadata.LanguageHint)
	if !res.Pair.Resolved {
		log.Debug("language codes not recognized",
			slog.String("source", res.Pair.SourceCode),
			slog.String("target", res.Pair.TargetCode),
		)
	}

	normalizer := pos.NewNormalizer(p.vocab, a.Kind)
	prs, err := newParser(a.Kind, normalizer.Tags(res.Pair.SourceCode))
	if err != nil {
		return err
	}

	var parseErr error
	normalized := func(yield func(domain.NormalizedEntry) bool) {
		for raw, err := range prs.Entries(a, &res.Stats) {
			if err != nil {
				parseErr = err
				return
			}
			e, ok := normalizer.Apply(raw, res.Pair.SourceCode)
			if !ok {
				res.Stats.Dropped++
				continue
			}
			res.Normalized++
			if !yield(e) {
				return
			}
		}
	}

	opts := p.assemblerOptions(res.Pair)
	asm := wordlist.NewAssembler(opts)
	for e := range filter.Apply(normalized, p.cfg.Policy) {
		res.Kept++
		asm.Add(e)
	}
	for _, skipped := range res.Stats.Skipped {
		log.Debug("record skipped", slog.String("error", skipped.Error()))
	}
	if parseErr != nil {
		return fmt.Errorf("parse %s: %w", a.Name, parseErr)
	}
	res.Filtered = res.Normalized - res.Kept
	res.License = license.Summarize(a.Metadata.License)

	source, target := asm.Finalize()
	res.SourceWords, res.TargetWords = len(source), len(target)
	if len(source)+len(target) == 0 {
		res.Warning = fmt.Errorf("%s: %w", a.Name, domain.ErrNoUsableEntries)
	}

	srcPath, tgtPath := p.outputPaths(res.Pair, archive.BaseName(a.Name))
	var outputs []wordlist.Output
	if !opts.SkipTarget {
		outputs = append(outputs, wordlist.Output{Path: tgtPath, Words: target})
	}
	if !opts.SkipSource {
		outputs = append(outputs, wordlist.Output{Path: srcPath, Words: source})
	}
	if err := wordlist.WriteAll(outputs...); err != nil {
		return err
	}
	if !opts.SkipTarget {
		res.TargetPath = tgtPath
	}
	if !opts.SkipSource {
		res.SourcePath = srcPath
	}
	return nil
}

// assemblerOptions applies the English toggle and stopword lists to pair.
func (p *Pipeline) assemblerOptions(pair domain.LanguagePair) wordlist.Options {
	opts := wordlist.Options{
		MinRunes:        p.cfg.MinRunes,
		SourceStopwords: p.cfg.ExtraStopwords,
		TargetStopwords: p.cfg.ExtraStopwords,
		SkipSource:      p.cfg.SkipEnglish && pair.SourceIsEnglish(),
		SkipTarget:      p.cfg.SkipEnglish && pair.TargetIsEnglish(),
	}
	if !p.cfg.KeepStopwords {
		if pair.SourceIsEnglish() {
			opts.SourceStopwords = slices.Concat(opts.SourceStopwords, wordlist.EnglishStopwords)
		}
		if pair.TargetIsEnglish() {
			opts.TargetStopwords = slices.Concat(opts.TargetStopwords, wordlist.EnglishStopwords)
		}
	}
	return opts
}

// outputPaths names the wordlists <label>_<base>.txt. Equal labels get
// _source and _target suffixes so the pair never collides.
func (p *Pipeline) outputPaths(pair domain.LanguagePair, base string) (source, target string) {
	srcSuffix, tgtSuffix := "", ""
	if pair.SourceName == pair.TargetName {
		srcSuffix, tgtSuffix = "_source", "_target"
	}
	source = filepath.Join(p.cfg.OutputDir, fileLabel(pair.SourceName)+"_"+base+srcSuffix+".txt")
	target = filepath.Join(p.cfg.OutputDir, fileLabel(pair.TargetName)+"_"+base+tgtSuffix+".txt")
	return source, target
}

func fileLabel(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, name)
}

func (p *Pipeline) displayName(label string) string {
	return p.title.String(strings.ReplaceAll(label, "_", " "))
}
