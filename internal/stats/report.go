package stats

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/verte-zerg/bookscore/internal/model"
)

const historyTrendWindow = 3

// HistoryLister reads saved score records.
type HistoryLister interface {
	ListScores(ctx context.Context, filter model.HistoryFilter) ([]model.ScoreRecord, error)
}

// History contains precomputed data for history rendering.
type History struct {
	Records []model.ScoreRecord `json:"records" yaml:"records"`
	Trend   []float64           `json:"trend" yaml:"trend"`
}

// BuildHistory loads records matching filter and computes the moving
// average of their total scores.
func BuildHistory(ctx context.Context, lister HistoryLister, filter model.HistoryFilter) (History, error) {
	records, err := lister.ListScores(ctx, filter)
	if err != nil {
		return History{}, fmt.Errorf("failed to list scores: %w", err)
	}
	if filter.Last > 0 && len(records) > filter.Last {
		records = records[len(records)-filter.Last:]
	}
	return History{
		Records: records,
		Trend:   MovingAverage(totals(records), historyTrendWindow),
	}, nil
}

func totals(records []model.ScoreRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = float64(rec.TotalScore)
	}
	return out
}

// WriteHistory renders saved scores oldest first followed by a sparkline of
// total scores.
func WriteHistory(w io.Writer, history History, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, history)
	case FormatYAML:
		return writeYAML(w, history)
	case FormatTable, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(history.Records) == 0 {
		_, err := fmt.Fprintln(w, "No scores found.")
		return err
	}
	headers := []string{"ID", "Scored", "Book", "V1", "V2", "V2 in range", "Words"}
	rows := make([][]string, 0, len(history.Records))
	for _, rec := range history.Records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", rec.ID),
			rec.ScoredAt.Local().Format("2006-01-02 15:04"),
			filepath.Base(rec.BookPath),
			fmt.Sprintf("%d", rec.V1Score),
			fmt.Sprintf("%d", rec.TotalScore),
			fmt.Sprintf("%d", rec.ScoreExcludingOutOfRange),
			fmt.Sprintf("%d", rec.WordCount),
		})
	}
	if err := writeTable(w, headers, rows, map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true}); err != nil {
		return err
	}
	if len(history.Records) < 2 {
		return nil
	}
	_, err := fmt.Fprintf(w, "\nV2 trend: [%s]\n", Sparkline(history.Trend))
	return err
}
