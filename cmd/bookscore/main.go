// Package main provides the CLI entrypoint for bookscore.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/bookscore/internal/bands"
	"github.com/verte-zerg/bookscore/internal/config"
	"github.com/verte-zerg/bookscore/internal/logging"
	"github.com/verte-zerg/bookscore/internal/model"
	"github.com/verte-zerg/bookscore/internal/score"
	"github.com/verte-zerg/bookscore/internal/stats"
)

const (
	defaultWeightOffset = 2
	defaultWeightPower  = 2
	defaultCommonWords  = 5_000
	defaultCache        = cacheSQLite
	defaultLogLevel     = "info"
)

var (
	configPath string
	logLevel   string

	corpusPath    string
	boundaries    string
	cacheBackend  string
	cacheDir      string
	dbPath        string
	normalization int
	weightOffset  int
	weightPower   int
	commonWords   int
	commonFile    string
	outputFormat  string
	saveHistory   bool

	historyBook  string
	historySince string
	historyLast  int

	settings model.ScoreConfig
	logger   = slog.Default()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "bookscore [books...]",
		Short:             "Score how demanding a book's vocabulary is",
		SilenceUsage:      true,
		SilenceErrors:     false,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: resolveSettings,
		RunE:              runScoreCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file path")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&corpusPath, "corpus", config.DefaultCorpusPath(), "frequency corpus, one word per line, most frequent first")
	flags.StringVar(&boundaries, "boundaries", bands.DefaultBoundaries.String(), "comma separated band rank boundaries")
	flags.StringVar(&cacheBackend, "cache", defaultCache, "band cache backend (none, memory, file, sqlite)")
	flags.StringVar(&cacheDir, "cache-dir", config.DefaultCacheDir(), "directory for the file band cache")
	flags.StringVar(&dbPath, "db", config.DefaultDBPath(), "SQLite database for history and the sqlite band cache")
	flags.IntVar(&normalization, "normalization", score.DefaultNormalization, "divisor applied to the weighted band sum")
	flags.IntVar(&weightOffset, "weight-offset", defaultWeightOffset, "band weight is (position + offset) ^ power")
	flags.IntVar(&weightPower, "weight-power", defaultWeightPower, "band weight is (position + offset) ^ power")
	flags.IntVar(&commonWords, "common-words", defaultCommonWords, "rank below which words count as common for the V1 score")
	flags.StringVar(&commonFile, "common-file", "", "word list replacing the corpus-derived common words for the V1 score")
	flags.StringVarP(&outputFormat, "format", "f", string(stats.FormatTable), "output format (table, json, yaml)")
	flags.BoolVar(&saveHistory, "save", false, "record scores in the history database")

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newBandsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// resolveSettings merges built-in defaults, the config file, BOOKSCORE_*
// environment variables and CLI flags, in increasing order of precedence.
func resolveSettings(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.ApplyEnv(&fileCfg, nil); err != nil {
		return err
	}

	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	logger = logging.SetDefaultCLILogger(logLevel)

	applyStringConfig(cmd, "corpus", &corpusPath, fileCfg.Corpus.Path)
	applyStringConfig(cmd, "cache", &cacheBackend, fileCfg.Corpus.Cache)
	applyStringConfig(cmd, "cache-dir", &cacheDir, fileCfg.Corpus.CacheDir)
	applyStringConfig(cmd, "db", &dbPath, fileCfg.Corpus.DB)
	applyIntsConfig(cmd, "boundaries", &boundaries, fileCfg.Corpus.Boundaries)
	applyIntConfig(cmd, "normalization", &normalization, fileCfg.Score.Normalization)
	applyIntConfig(cmd, "weight-offset", &weightOffset, fileCfg.Score.WeightOffset)
	applyIntConfig(cmd, "weight-power", &weightPower, fileCfg.Score.WeightPower)
	applyStringConfig(cmd, "format", &outputFormat, fileCfg.Score.Format)
	applyBoolConfig(cmd, "save", &saveHistory, fileCfg.Score.Save)
	applyIntConfig(cmd, "common-words", &commonWords, fileCfg.V1.CommonWords)
	applyStringConfig(cmd, "common-file", &commonFile, fileCfg.V1.CommonFile)

	parsed, err := bands.ParseBoundaries(boundaries)
	if err != nil {
		return fmt.Errorf("invalid --boundaries: %w", err)
	}
	format, err := stats.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	settings = model.ScoreConfig{
		CorpusPath:    expandHome(corpusPath),
		Boundaries:    parsed,
		Normalization: normalization,
		WeightOffset:  weightOffset,
		WeightPower:   weightPower,
		CommonWords:   commonWords,
		CommonFile:    expandHome(commonFile),
		Cache:         cacheBackend,
		CacheDir:      expandHome(cacheDir),
		DBPath:        expandHome(dbPath),
		Format:        string(format),
		Save:          saveHistory,
	}
	return validateSettings(settings)
}

func validateSettings(cfg model.ScoreConfig) error {
	if cfg.Normalization <= 0 {
		return fmt.Errorf("--normalization must be > 0")
	}
	if cfg.WeightPower < 0 {
		return fmt.Errorf("--weight-power must be >= 0")
	}
	if cfg.CommonWords < 0 {
		return fmt.Errorf("--common-words must be >= 0")
	}
	switch cfg.Cache {
	case cacheNone, cacheMemory, cacheFile, cacheSQLite:
	default:
		return fmt.Errorf("unknown --cache %q (use none, memory, file or sqlite)", cfg.Cache)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntsConfig(cmd *cobra.Command, name string, target *string, value []int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = bands.Boundaries(value).String()
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + path[1:]
}
