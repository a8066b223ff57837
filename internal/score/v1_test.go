package score

import (
	"testing"

	"github.com/verte-zerg/bookscore/internal/bands"
)

func TestComputeStatsV1(t *testing.T) {
	body := "The cat sat. The dog ran!\n\nA bird, a Bird."
	stats := ComputeStatsV1(body, CommonSet([]string{"The", "a"}))

	if stats.Sentences != 3 {
		t.Fatalf("expected 3 sentences, got %d", stats.Sentences)
	}
	if stats.Words != 10 {
		t.Fatalf("expected 10 words, got %d", stats.Words)
	}
	// the x2, a x2 are common.
	if stats.UncommonWords != 6 {
		t.Fatalf("expected 6 uncommon words, got %d", stats.UncommonWords)
	}
	// the, cat, sat, dog, ran, a, bird
	if stats.UniqueWords != 7 {
		t.Fatalf("expected 7 unique words, got %d", stats.UniqueWords)
	}
	if stats.AverageSentenceLength != 3.3 {
		t.Fatalf("expected average 3.3, got %v", stats.AverageSentenceLength)
	}
}

func TestComputeStatsV1AverageRoundsHalfToEven(t *testing.T) {
	// 5 words over 4 sentences is exactly 1.25.
	stats := ComputeStatsV1("A b. C. D. E.", nil)
	if stats.Words != 5 || stats.Sentences != 4 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.AverageSentenceLength != 1.2 {
		t.Fatalf("expected average 1.2, got %v", stats.AverageSentenceLength)
	}
}

func TestComputeStatsV1Empty(t *testing.T) {
	stats := ComputeStatsV1("", nil)
	if stats.Sentences != 0 || stats.Words != 0 || stats.AverageSentenceLength != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestScoreV1(t *testing.T) {
	cfg := DefaultConfigV1()

	// 60000/60000*0.6*10 = 6 -> 60; 9000/9000*0.2*10 = 2 -> 20; 10/10*0.2*10 = 2 -> 20.
	got := ScoreV1(StatsV1{Words: 60_000, UniqueWords: 9_000, AverageSentenceLength: 10}, cfg)
	if got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
	if got := ScoreV1(StatsV1{}, cfg); got != cfg.Min {
		t.Fatalf("expected clamp to min %d, got %d", cfg.Min, got)
	}
	if got := ScoreV1(StatsV1{Words: 10_000_000}, cfg); got != cfg.Max {
		t.Fatalf("expected clamp to max %d, got %d", cfg.Max, got)
	}
	// 25000/60000*6 = 2.5 rounds half to even -> 2 -> 20.
	if got := ScoreV1(StatsV1{Words: 25_000}, cfg); got != 20 {
		t.Fatalf("expected half-even rounding to 20, got %d", got)
	}
}

func TestCommonFromBands(t *testing.T) {
	b := mustBuild(t, []string{"the", "of", "and", "to", "in"}, bands.Boundaries{0, 2, 4, 6})

	common := CommonFromBands(b, 4)
	if len(common) != 4 {
		t.Fatalf("expected the four most frequent words, got %v", common)
	}
	if _, ok := common["in"]; ok {
		t.Fatalf("rank 4 word should not be common: %v", common)
	}
	if got := CommonFromBands(b, 3); len(got) != 2 {
		t.Fatalf("limit inside a band should stop at the previous boundary, got %v", got)
	}
	if got := CommonFromBands(b, 0); len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got)
	}
}
