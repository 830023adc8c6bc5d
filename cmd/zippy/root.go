package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/zippy/internal/app"
	"github.com/heartmarshall/zippy/internal/app/extractor"
	"github.com/heartmarshall/zippy/internal/app/extractor/langcode"
	"github.com/heartmarshall/zippy/internal/app/extractor/pos"
	"github.com/heartmarshall/zippy/internal/config"
)

// errFailures is returned when the run completed but some dictionary failed.
var errFailures = errors.New("some dictionaries could not be processed")

// options holds the persistent flags shared by every command.
type options struct {
	configPath  string
	verbose     int
	pos         []string
	skipEnglish bool
	inputDir    string
	outputDir   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "zippy",
		Short: "Extract content-word wordlists from dictionary archives",
		Long: `Reads bilingual dictionaries (.dz, .dictd.tar.xz, .src.tar.xz) and writes
one sorted, deduplicated wordlist per language, keeping nouns, verbs,
adjectives and adverbs by default.

Without a subcommand every dictionary in the input directory is processed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAll(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to YAML config file (default $ZIPPY_CONFIG or "+config.DefaultPath+")")
	pf.CountVarP(&opts.verbose, "verbose", "v", "increase verbosity (-v info, -vv debug)")
	pf.StringSliceVarP(&opts.pos, "pos", "p", nil, "parts of speech to keep: n, v, adj, adv, other, unknown, all or none")
	pf.BoolVar(&opts.skipEnglish, "skip-english", false, "do not write wordlists for the English side")
	pf.StringVarP(&opts.inputDir, "input", "i", "", "directory holding the dictionaries")
	pf.StringVarP(&opts.outputDir, "output", "o", "", "directory receiving the wordlists")

	root.AddCommand(newAllCmd(opts), newSingleCmd(opts), newVersionCmd())
	return root
}

// loadConfig reads the configuration file and environment, then applies
// the command-line overrides.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("pos") {
		cfg.Filter.POSRaw = strings.Join(o.pos, ",")
	}
	if o.skipEnglish {
		cfg.Filter.SkipEnglish = true
	}
	if o.inputDir != "" {
		cfg.Paths.InputDir = o.inputDir
	}
	if o.outputDir != "" {
		cfg.Paths.OutputDir = o.outputDir
	}
	if o.verbose > 0 {
		cfg.Log.Level = app.VerbosityLevel(o.verbose)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// newPipeline wires the extraction pipeline from configuration.
func (o *options) newPipeline(cmd *cobra.Command) (*extractor.Pipeline, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := app.NewLogger(cfg.Log)

	vocab := pos.DefaultVocabulary()
	if cfg.POS.VocabularyPath != "" {
		tables, err := pos.LoadTables(cfg.POS.VocabularyPath)
		if err != nil {
			return nil, err
		}
		vocab = vocab.With(tables)
		logger.Debug("pos vocabulary extended",
			slog.String("path", cfg.POS.VocabularyPath),
			slog.Int("tables", len(tables)),
		)
	}

	langs := langcode.NewResolver(cfg.Languages.Names)
	return extractor.NewPipeline(logger, extractor.NewConfig(cfg), vocab, langs), nil
}

// printResult writes a one-line summary of a dictionary run.
func printResult(cmd *cobra.Command, r extractor.Result) {
	if r.Err != nil {
		cmd.Printf("FAIL %s: %v\n", r.File, r.Err)
		return
	}
	cmd.Printf("ok   %s (%s, license %s)\n", r.File, r.Kind, r.License)
	if r.SourcePath != "" {
		cmd.Printf("     %d words -> %s\n", r.SourceWords, r.SourcePath)
	}
	if r.TargetPath != "" {
		cmd.Printf("     %d words -> %s\n", r.TargetWords, r.TargetPath)
	}
}
