package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/bookscore/internal/bands"
	"github.com/verte-zerg/bookscore/internal/model"
	"github.com/verte-zerg/bookscore/internal/score"
	"github.com/verte-zerg/bookscore/internal/stats"
	"github.com/verte-zerg/bookscore/internal/store"
	"github.com/verte-zerg/bookscore/internal/text"
	"github.com/verte-zerg/bookscore/internal/wordlist"
)

const (
	cacheNone   = "none"
	cacheMemory = "memory"
	cacheFile   = "file"
	cacheSQLite = "sqlite"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <books...>",
		Short: "Score books (.txt, .epub, .md)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScoreCmd,
	}
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	ctx := commandContext(cmd)
	env, err := openEnv(ctx, settings, settings.Save)
	if err != nil {
		return err
	}
	defer env.Close()

	reports, err := scoreBooks(ctx, env.scorer, env.common, args, logger)
	if err != nil {
		return err
	}
	for i := range reports {
		reports[i].BandKey = env.bandKey
	}
	if settings.Save {
		if err := saveReports(ctx, env.store, env.bandKey, reports); err != nil {
			return err
		}
	}
	return stats.WriteResults(cmd.OutOrStdout(), reports, stats.Format(settings.Format))
}

// scoreEnv holds everything needed to score books for one run.
type scoreEnv struct {
	bands   *bands.Bands
	bandKey string
	scorer  *score.Scorer
	common  map[string]struct{}
	store   *store.Store
}

// Close releases the history database, if one was opened.
func (e *scoreEnv) Close() {
	if e.store == nil {
		return
	}
	if cerr := e.store.Close(); cerr != nil {
		logger.Warn("failed to close db", "error", cerr)
	}
}

// openEnv loads or builds the bands and prepares the scorer. The database is
// opened when the sqlite cache is selected or needStore is set.
func openEnv(ctx context.Context, cfg model.ScoreConfig, needStore bool) (*scoreEnv, error) {
	env := &scoreEnv{}
	if needStore || cfg.Cache == cacheSQLite {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		env.store = st
	}

	storage, err := bandStorage(cfg, env.store)
	if err != nil {
		env.Close()
		return nil, err
	}
	source := &wordlist.CorpusFile{Path: cfg.CorpusPath, Logger: logger.WithGroup("corpus")}
	id, err := source.ID()
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to read corpus (set --corpus or BOOKSCORE_CORPUS): %w", err)
	}
	env.bandKey = bands.Key(id, cfg.Boundaries)

	env.bands, err = bands.LoadOrBuild(ctx, storage, source, cfg.Boundaries, logger.WithGroup("bands"))
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("failed to prepare bands: %w", err)
	}
	env.scorer, err = score.NewScorer(env.bands, score.Polynomial(cfg.WeightOffset, cfg.WeightPower), cfg.Normalization)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.common, err = commonWordSet(env.bands, cfg)
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

func bandStorage(cfg model.ScoreConfig, st *store.Store) (bands.Storage, error) {
	switch cfg.Cache {
	case cacheNone:
		return bands.NoStorage{}, nil
	case cacheMemory:
		return bands.NewMemoryStorage(), nil
	case cacheFile:
		return bands.FileStorage{Dir: cfg.CacheDir}, nil
	case cacheSQLite:
		if st == nil {
			return nil, errors.New("sqlite cache requires an open database")
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache)
	}
}

func commonWordSet(b *bands.Bands, cfg model.ScoreConfig) (map[string]struct{}, error) {
	if cfg.CommonFile == "" {
		return score.CommonFromBands(b, cfg.CommonWords), nil
	}
	words, err := wordlist.LoadWords(cfg.CommonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load common words: %w", err)
	}
	return score.CommonSet(words), nil
}

// scoreBooks scores every book concurrently. Reports keep the order of paths.
func scoreBooks(ctx context.Context, scorer *score.Scorer, common map[string]struct{}, paths []string, logger *slog.Logger) ([]stats.BookReport, error) {
	reports := make([]stats.BookReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := scoreBook(path, scorer, common, logger)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// scoreBook extracts and scores one book. A book whose text cannot be
// extracted scores as empty and carries the extraction error.
func scoreBook(path string, scorer *score.Scorer, common map[string]struct{}, logger *slog.Logger) (stats.BookReport, error) {
	report := stats.BookReport{Book: path, Weights: scorer.Weights()}

	start := time.Now()
	body, err := text.Extract(path)
	if err != nil {
		logger.Warn("no text extracted", "book", path, "error", err)
		report.Error = err.Error()
		body = ""
	}

	res, _, err := scorer.ScoreText(body)
	if err != nil {
		return stats.BookReport{}, fmt.Errorf("failed to score %s: %w", path, err)
	}
	report.Result = res
	report.V1Stats = score.ComputeStatsV1(body, common)
	report.V1Score = score.ScoreV1(report.V1Stats, score.DefaultConfigV1())
	logger.Debug("scored book", "book", path, "total", res.TotalScore, "elapsed", time.Since(start))
	return report, nil
}

func saveReports(ctx context.Context, st *store.Store, bandKey string, reports []stats.BookReport) error {
	now := time.Now()
	for _, report := range reports {
		words := 0
		for _, c := range report.Result.BandCounts {
			words += c
		}
		id, err := st.InsertScore(ctx, model.ScoreRecord{
			ScoredAt:                 now,
			BookPath:                 absPath(report.Book),
			BandKey:                  bandKey,
			TotalScore:               report.Result.TotalScore,
			ScoreExcludingOutOfRange: report.Result.ScoreExcludingOutOfRange,
			V1Score:                  report.V1Score,
			WordCount:                words,
			BandLabels:               report.Result.BandLabels,
			BandCounts:               report.Result.BandCounts,
		})
		if err != nil {
			return fmt.Errorf("failed to save score for %s: %w", report.Book, err)
		}
		logger.Debug("saved score", "book", report.Book, "id", id)
	}
	return nil
}

func writeLine(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format+"\n", args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
