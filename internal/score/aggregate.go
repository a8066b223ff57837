package score

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidNormalization is returned for a non-positive normalization divisor.
var ErrInvalidNormalization = errors.New("normalization must be a positive integer")

// DefaultNormalization divides the raw weighted sum.
const DefaultNormalization = 10_000

// WeightFunc returns the weight of the band at a 0-based position, where
// position 0 is the most frequent band and the out-of-range band comes last.
type WeightFunc func(position int) int

// Polynomial returns the weight function (position + offset) ^ power.
func Polynomial(offset, power int) WeightFunc {
	return func(position int) int {
		base := position + offset
		w := 1
		for i := 0; i < power; i++ {
			w *= base
		}
		return w
	}
}

// DefaultWeights returns (position + 2) ^ 2.
func DefaultWeights() WeightFunc {
	return Polynomial(2, 2)
}

// Result is the outcome of scoring one book.
type Result struct {
	TotalScore               int      `json:"total_score" yaml:"total_score"`
	ScoreExcludingOutOfRange int      `json:"score_excluding_out_of_range" yaml:"score_excluding_out_of_range"`
	BandLabels               []string `json:"band_labels" yaml:"band_labels"`
	BandCounts               []int    `json:"band_counts" yaml:"band_counts"`
	OutOfRangeWords          []string `json:"out_of_range_words" yaml:"out_of_range_words"`
}

// Aggregate combines band counts into the total score and the score without
// the out-of-range contribution. Both are floor-divided by normalization
// independently.
func Aggregate(counts BandCount, weight WeightFunc, normalization int) (Result, error) {
	if normalization <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidNormalization, normalization)
	}
	if weight == nil {
		weight = DefaultWeights()
	}

	var total, inRange int
	last := len(counts.Counts) - 1
	for i, n := range counts.Counts {
		contribution := weight(i) * n
		total += contribution
		if i < last {
			inRange += contribution
		}
	}

	words := make([]string, 0, len(counts.OutOfRange))
	for word := range counts.OutOfRange {
		words = append(words, word)
	}
	sort.Strings(words)

	return Result{
		TotalScore:               floorDiv(total, normalization),
		ScoreExcludingOutOfRange: floorDiv(inRange, normalization),
		BandLabels:               append([]string(nil), counts.Labels...),
		BandCounts:               append([]int(nil), counts.Counts...),
		OutOfRangeWords:          words,
	}, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
