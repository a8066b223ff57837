package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/bookscore/internal/score"
)

// Format selects how reports are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ErrUnknownFormat is returned for an output format other than table, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

const (
	barWidth        = 30
	maxListedWords  = 20
	titleColor      = "#C89A3A"
	barColor        = "#5FAFD7"
	outOfRangeColor = "#FF4D4F"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// BookReport is everything printed for one scored book.
type BookReport struct {
	Book    string        `json:"book" yaml:"book"`
	BandKey string        `json:"band_key,omitempty" yaml:"band_key,omitempty"`
	Weights []int         `json:"weights" yaml:"weights"`
	V1Score int           `json:"v1_score" yaml:"v1_score"`
	V1Stats score.StatsV1 `json:"v1_stats" yaml:"v1_stats"`
	Result  score.Result  `json:"result" yaml:"result"`
	Error   string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// WriteResult writes a single report.
func WriteResult(w io.Writer, report BookReport, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatTable, "":
		return writeReportTable(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteResults writes several reports. JSON and YAML output is a list.
func WriteResults(w io.Writer, reports []BookReport, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatYAML:
		return writeYAML(w, reports)
	case FormatTable, "":
		for i, report := range reports {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := WriteResult(w, report, FormatTable); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func writeReportTable(w io.Writer, report BookReport) error {
	// The renderer drops colour when w is not a terminal or NO_COLOR is set.
	renderer := lipgloss.NewRenderer(w)
	titleStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color(titleColor))
	barStyle := renderer.NewStyle().Foreground(lipgloss.Color(barColor))
	oorStyle := renderer.NewStyle().Foreground(lipgloss.Color(outOfRangeColor))

	if _, err := fmt.Fprintln(w, titleStyle.Render(report.Book)); err != nil {
		return err
	}
	if report.Error != "" {
		if _, err := fmt.Fprintf(w, "  error: %s\n", report.Error); err != nil {
			return err
		}
	}
	v1 := report.V1Stats
	if _, err := fmt.Fprintf(w, "  V1 score: %d (sentences %d, words %d, unique %d, avg sentence %.2f)\n",
		report.V1Score, v1.Sentences, v1.Words, v1.UniqueWords, v1.AverageSentenceLength); err != nil {
		return err
	}
	res := report.Result
	if _, err := fmt.Fprintf(w, "  V2 score: %d (excluding out of range: %d)\n\n",
		res.TotalScore, res.ScoreExcludingOutOfRange); err != nil {
		return err
	}

	total := 0
	for _, c := range res.BandCounts {
		total += c
	}
	rows := make([][]string, 0, len(res.BandCounts))
	for i, count := range res.BandCounts {
		label := ""
		if i < len(res.BandLabels) {
			label = res.BandLabels[i]
		}
		weight := 0
		if i < len(report.Weights) {
			weight = report.Weights[i]
		}
		style := barStyle
		if i == len(res.BandCounts)-1 {
			style = oorStyle
		}
		bar := shareBar(count, total, barWidth)
		if bar != "" {
			bar = style.Render(bar)
		}
		rows = append(rows, []string{
			label,
			fmt.Sprintf("%d", count),
			fmt.Sprintf("%.1f%%", percent(count, total)),
			fmt.Sprintf("%d", weight),
			fmt.Sprintf("%d", count*weight),
			bar,
		})
	}
	headers := []string{"Band", "Words", "Share", "Weight", "Contribution", ""}
	if err := writeTable(w, headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}); err != nil {
		return err
	}

	if len(res.OutOfRangeWords) == 0 {
		return nil
	}
	listed := res.OutOfRangeWords
	suffix := ""
	if len(listed) > maxListedWords {
		suffix = fmt.Sprintf(" (+%d more)", len(listed)-maxListedWords)
		listed = listed[:maxListedWords]
	}
	_, err := fmt.Fprintf(w, "\nOut of range (%d distinct): %s%s\n",
		len(res.OutOfRangeWords), strings.Join(listed, ", "), suffix)
	return err
}

// BandSummary describes one built band.
type BandSummary struct {
	Label string `json:"label" yaml:"label"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
	Words int    `json:"words" yaml:"words"`
}

// BandsReport lists the bands built for a corpus and boundary set.
type BandsReport struct {
	Key   string        `json:"key" yaml:"key"`
	Bands []BandSummary `json:"bands" yaml:"bands"`
}

// WriteBands writes the band sizes.
func WriteBands(w io.Writer, report BandsReport, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatYAML:
		return writeYAML(w, report)
	case FormatTable, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if _, err := fmt.Fprintf(w, "Bands %s\n", report.Key); err != nil {
		return err
	}
	rows := make([][]string, 0, len(report.Bands))
	total := 0
	for _, band := range report.Bands {
		total += band.Words
		rows = append(rows, []string{
			band.Label,
			fmt.Sprintf("%d", band.Start),
			fmt.Sprintf("%d", band.End),
			fmt.Sprintf("%d", band.Words),
		})
	}
	rows = append(rows, []string{"total", "", "", fmt.Sprintf("%d", total)})
	return writeTable(w, []string{"Band", "Start", "End", "Words"}, rows, map[int]bool{1: true, 2: true, 3: true})
}
