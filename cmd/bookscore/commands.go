package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/bookscore/internal/config"
	"github.com/verte-zerg/bookscore/internal/inspect"
	"github.com/verte-zerg/bookscore/internal/model"
	"github.com/verte-zerg/bookscore/internal/stats"
	"github.com/verte-zerg/bookscore/internal/store"
)

func newBandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Build or load the frequency bands and print their sizes",
		Args:  cobra.NoArgs,
		RunE:  runBandsCmd,
	}
}

func runBandsCmd(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(commandContext(cmd), settings, false)
	if err != nil {
		return err
	}
	defer env.Close()

	report := stats.BandsReport{Key: env.bandKey}
	for _, band := range env.bands.Bands() {
		report.Bands = append(report.Bands, stats.BandSummary{
			Label: band.Label,
			Start: band.Start,
			End:   band.End,
			Words: len(band.Members),
		})
	}
	return stats.WriteBands(cmd.OutOrStdout(), report, stats.Format(settings.Format))
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved scores",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyBook, "book", "", "only show scores of this book")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N scores")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter(historyBook, historySince, historyLast)
	if err != nil {
		return err
	}

	st, err := store.Open(settings.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", "error", cerr)
		}
	}()

	history, err := stats.BuildHistory(commandContext(cmd), st, filter)
	if err != nil {
		return err
	}
	return stats.WriteHistory(cmd.OutOrStdout(), history, stats.Format(settings.Format))
}

func historyFilter(book, since string, last int) (model.HistoryFilter, error) {
	filter := model.HistoryFilter{Last: last}
	if last < 0 {
		return filter, fmt.Errorf("--last must be >= 0")
	}
	if book != "" {
		filter.Book = absPath(book)
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return filter, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <book>",
		Short: "Explore a book's bands, out-of-range words and score history",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspectCmd,
	}
}

func runInspectCmd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	env, err := openEnv(ctx, settings, settings.Save)
	if err != nil {
		return err
	}
	defer env.Close()

	book := args[0]
	report, err := scoreBook(book, env.scorer, env.common, logger)
	if err != nil {
		return err
	}
	report.BandKey = env.bandKey
	if settings.Save {
		if err := saveReports(ctx, env.store, env.bandKey, []stats.BookReport{report}); err != nil {
			return err
		}
	}

	history, historyErr := loadBookHistory(ctx, env.store, book)
	program := tea.NewProgram(inspect.NewModel(report, history, historyErr), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run inspect TUI: %w", err)
	}
	return nil
}

// loadBookHistory reads the saved scores of book, opening the database when
// the run did not need it.
func loadBookHistory(ctx context.Context, st *store.Store, book string) (stats.History, error) {
	if st == nil {
		opened, err := store.Open(settings.DBPath)
		if err != nil {
			return stats.History{}, err
		}
		defer func() {
			if cerr := opened.Close(); cerr != nil {
				logger.Warn("failed to close db", "error", cerr)
			}
		}()
		st = opened
	}
	return stats.BuildHistory(ctx, st, model.HistoryFilter{Book: absPath(book)})
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		// Skip settings resolution so a broken config can still be edited.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              runConfigCmd,
	}
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := expandHome(configPath)
	created, err := config.WriteTemplate(path)
	if err != nil {
		return err
	}
	if created {
		if err := writeLine(cmd.ErrOrStderr(), "Created %s", path); err != nil {
			return err
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
