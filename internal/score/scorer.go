package score

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/bookscore/internal/bands"
	"github.com/verte-zerg/bookscore/internal/text"
)

// ErrWeightsNotIncreasing is returned when a weight function ranks a rarer band
// below a more common one.
var ErrWeightsNotIncreasing = errors.New("band weights must not decrease")

// Scorer scores books against a fixed set of bands. It holds no mutable state
// and may be shared between goroutines.
type Scorer struct {
	bands         *bands.Bands
	weight        WeightFunc
	normalization int
}

// NewScorer validates the configuration and returns a Scorer.
func NewScorer(b *bands.Bands, weight WeightFunc, normalization int) (*Scorer, error) {
	if b == nil {
		return nil, fmt.Errorf("bands are required")
	}
	if normalization <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidNormalization, normalization)
	}
	if weight == nil {
		weight = DefaultWeights()
	}
	prev := weight(0)
	for i := 1; i <= b.OutOfRange(); i++ {
		w := weight(i)
		if w < prev {
			return nil, fmt.Errorf("%w: position %d has weight %d after %d", ErrWeightsNotIncreasing, i, w, prev)
		}
		prev = w
	}
	return &Scorer{bands: b, weight: weight, normalization: normalization}, nil
}

// Bands returns the bands the scorer classifies against.
func (s *Scorer) Bands() *bands.Bands {
	return s.bands
}

// Weights returns the weight of every band position, out-of-range last.
func (s *Scorer) Weights() []int {
	out := make([]int, s.bands.OutOfRange()+1)
	for i := range out {
		out[i] = s.weight(i)
	}
	return out
}

// ScoreWords cleans raw tokens, classifies them and aggregates the counts.
func (s *Scorer) ScoreWords(tokens []string) (Result, BandCount, error) {
	counts := Classify(CleanWords(tokens), s.bands)
	res, err := Aggregate(counts, s.weight, s.normalization)
	if err != nil {
		return Result{}, BandCount{}, err
	}
	return res, counts, nil
}

// ScoreText tokenizes text and scores its words. Empty text scores zero.
func (s *Scorer) ScoreText(body string) (Result, BandCount, error) {
	return s.ScoreWords(text.TokenizeWords(body))
}
