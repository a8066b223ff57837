package score

import (
	"errors"
	"reflect"
	"testing"

	"github.com/verte-zerg/bookscore/internal/bands"
)

func mustBuild(t *testing.T, ranked []string, boundaries bands.Boundaries) *bands.Bands {
	t.Helper()
	b, err := bands.Build(ranked, boundaries)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return b
}

func TestClassifyExample(t *testing.T) {
	b := mustBuild(t, []string{"the", "of", "and", "to"}, bands.Boundaries{0, 2, 4})
	counts := Classify([]string{"the", "the", "zzz"}, b)

	if !reflect.DeepEqual(counts.Counts, []int{2, 0, 1}) {
		t.Fatalf("unexpected counts: %v", counts.Counts)
	}
	if len(counts.OutOfRange) != 1 {
		t.Fatalf("expected 1 out-of-range word, got %v", counts.OutOfRange)
	}
	if _, ok := counts.OutOfRange["zzz"]; !ok {
		t.Fatalf("expected zzz out of range, got %v", counts.OutOfRange)
	}
	if counts.Labels[2] != bands.OutOfRangeLabel {
		t.Fatalf("unexpected labels: %v", counts.Labels)
	}
}

func TestClassifyCountsEveryWord(t *testing.T) {
	b := mustBuild(t, []string{"a", "b", "c", "d", "e"}, bands.Boundaries{0, 1, 3, 4})
	words := []string{"a", "e", "b", "x", "c", "d", "d", "a", "y", "y"}
	counts := Classify(words, b)
	if counts.Total() != len(words) {
		t.Fatalf("expected counts to sum to %d, got %d", len(words), counts.Total())
	}
	if !reflect.DeepEqual(counts.Counts, []int{2, 2, 2, 4}) {
		t.Fatalf("unexpected counts: %v", counts.Counts)
	}
	if len(counts.OutOfRange) != 3 {
		t.Fatalf("expected e, x, y out of range, got %v", counts.OutOfRange)
	}
}

func TestClassifyEmpty(t *testing.T) {
	b := mustBuild(t, []string{"a", "b"}, bands.Boundaries{0, 1, 2})
	counts := Classify(nil, b)
	if !reflect.DeepEqual(counts.Counts, []int{0, 0, 0}) || len(counts.OutOfRange) != 0 {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

func TestCleanWords(t *testing.T) {
	got := CleanWords([]string{"The", ",", "Well-Known", "42", "don't", "co--op"})
	want := []string{"the", "well-known", "don't"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CleanWords = %q, want %q", got, want)
	}
}

func TestAggregateExample(t *testing.T) {
	counts := BandCount{
		Labels:     []string{"block [0-2]", "block [2-4]", bands.OutOfRangeLabel},
		Counts:     []int{3, 2, 1},
		OutOfRange: map[string]struct{}{"zzz": {}, "aaa": {}},
	}
	res, err := Aggregate(counts, Polynomial(2, 2), 10)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if res.TotalScore != 4 {
		t.Fatalf("expected total 4, got %d", res.TotalScore)
	}
	if res.ScoreExcludingOutOfRange != 3 {
		t.Fatalf("expected score excluding out-of-range 3, got %d", res.ScoreExcludingOutOfRange)
	}
	if !reflect.DeepEqual(res.BandCounts, []int{3, 2, 1}) {
		t.Fatalf("unexpected band counts: %v", res.BandCounts)
	}
	if !reflect.DeepEqual(res.OutOfRangeWords, []string{"aaa", "zzz"}) {
		t.Fatalf("expected sorted out-of-range words, got %v", res.OutOfRangeWords)
	}
}

func TestAggregateFloorsIndependently(t *testing.T) {
	// raw total 4*1 + 9*1 + 16*1 = 29, in-range 13; 29/7 = 4, 13/7 = 1.
	counts := BandCount{Counts: []int{1, 1, 1}}
	res, err := Aggregate(counts, nil, 7)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if res.TotalScore != 4 || res.ScoreExcludingOutOfRange != 1 {
		t.Fatalf("unexpected scores: %+v", res)
	}

	negative := func(int) int { return -3 }
	res, err = Aggregate(BandCount{Counts: []int{1, 0}}, negative, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if res.TotalScore != -2 {
		t.Fatalf("expected floor(-3/2) = -2, got %d", res.TotalScore)
	}
}

func TestAggregateRejectsZeroNormalization(t *testing.T) {
	for _, n := range []int{0, -5} {
		if _, err := Aggregate(BandCount{Counts: []int{1}}, nil, n); !errors.Is(err, ErrInvalidNormalization) {
			t.Fatalf("expected ErrInvalidNormalization for %d, got %v", n, err)
		}
	}
}

func TestPolynomial(t *testing.T) {
	w := DefaultWeights()
	for i, want := range []int{4, 9, 16, 25} {
		if got := w(i); got != want {
			t.Fatalf("weight(%d) = %d, want %d", i, got, want)
		}
	}
	if got := Polynomial(1, 0)(5); got != 1 {
		t.Fatalf("expected power 0 to give 1, got %d", got)
	}
}

func TestNewScorerValidation(t *testing.T) {
	b := mustBuild(t, []string{"a", "b"}, bands.Boundaries{0, 1, 2})
	if _, err := NewScorer(nil, nil, 10); err == nil {
		t.Fatalf("expected error for nil bands")
	}
	if _, err := NewScorer(b, nil, 0); !errors.Is(err, ErrInvalidNormalization) {
		t.Fatalf("expected ErrInvalidNormalization, got %v", err)
	}
	decreasing := func(i int) int { return 10 - i }
	if _, err := NewScorer(b, decreasing, 10); !errors.Is(err, ErrWeightsNotIncreasing) {
		t.Fatalf("expected ErrWeightsNotIncreasing, got %v", err)
	}
	s, err := NewScorer(b, nil, 10)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	if !reflect.DeepEqual(s.Weights(), []int{4, 9, 16}) {
		t.Fatalf("unexpected weights: %v", s.Weights())
	}
}

func TestScorerScoreText(t *testing.T) {
	b := mustBuild(t, []string{"the", "of", "and", "to"}, bands.Boundaries{0, 2, 4})
	s, err := NewScorer(b, nil, 1)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}

	res, counts, err := s.ScoreText("The cat, and THE dog 42")
	if err != nil {
		t.Fatalf("ScoreText failed: %v", err)
	}
	// the, the -> band 0; and -> band 1; cat, dog -> out of range.
	if !reflect.DeepEqual(counts.Counts, []int{2, 1, 2}) {
		t.Fatalf("unexpected counts: %v", counts.Counts)
	}
	if res.TotalScore != 2*4+1*9+2*16 || res.ScoreExcludingOutOfRange != 2*4+1*9 {
		t.Fatalf("unexpected scores: %+v", res)
	}
	if !reflect.DeepEqual(res.OutOfRangeWords, []string{"cat", "dog"}) {
		t.Fatalf("unexpected out-of-range words: %v", res.OutOfRangeWords)
	}

	// Bare punctuation from the allow-list still counts as a word.
	_, counts, err = s.ScoreText("the .")
	if err != nil {
		t.Fatalf("ScoreText failed: %v", err)
	}
	if !reflect.DeepEqual(counts.Counts, []int{1, 0, 1}) {
		t.Fatalf("unexpected counts for punctuation: %v", counts.Counts)
	}

	empty, _, err := s.ScoreText("")
	if err != nil {
		t.Fatalf("ScoreText failed: %v", err)
	}
	if empty.TotalScore != 0 || empty.ScoreExcludingOutOfRange != 0 || !reflect.DeepEqual(empty.BandCounts, []int{0, 0, 0}) {
		t.Fatalf("expected zero result for empty text, got %+v", empty)
	}
}

func TestRarerRankNeverLowersScore(t *testing.T) {
	boundaries := bands.Boundaries{0, 2, 4, 6}
	base := []string{"a", "b", "c", "d", "e", "f"}

	var prev int
	for pos := 0; pos < len(base); pos++ {
		// Move "c" to rank pos, keeping the other words in order.
		ranked := make([]string, 0, len(base))
		for _, w := range base {
			if w != "c" {
				ranked = append(ranked, w)
			}
		}
		ranked = append(ranked[:pos], append([]string{"c"}, ranked[pos:]...)...)

		s, err := NewScorer(mustBuild(t, ranked, boundaries), nil, 1)
		if err != nil {
			t.Fatalf("NewScorer failed: %v", err)
		}
		counts := Classify([]string{"c"}, s.Bands())
		res, err := Aggregate(counts, DefaultWeights(), 1)
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if pos > 0 && res.ScoreExcludingOutOfRange < prev {
			t.Fatalf("moving c to rank %d lowered its score from %d to %d", pos, prev, res.ScoreExcludingOutOfRange)
		}
		prev = res.ScoreExcludingOutOfRange
	}
}
