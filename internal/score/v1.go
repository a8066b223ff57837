package score

import (
	"math"
	"strings"

	"github.com/verte-zerg/bookscore/internal/bands"
	"github.com/verte-zerg/bookscore/internal/text"
)

// StatsV1 are the plain text statistics behind the V1 score.
type StatsV1 struct {
	Sentences             int     `json:"sentences" yaml:"sentences"`
	Words                 int     `json:"words" yaml:"words"`
	UncommonWords         int     `json:"uncommon_words" yaml:"uncommon_words"`
	UniqueWords           int     `json:"unique_words" yaml:"unique_words"`
	AverageSentenceLength float64 `json:"average_sentence_length" yaml:"average_sentence_length"`
}

// ConfigV1 weighs and normalises the V1 statistics.
type ConfigV1 struct {
	WordsWeight                 float64
	UniqueWordsWeight           float64
	SentenceLengthWeight        float64
	WordsNormalization          float64
	UniqueWordsNormalization    float64
	SentenceLengthNormalization float64
	Min                         int
	Max                         int
}

// DefaultConfigV1 returns the stock V1 weights and bounds.
func DefaultConfigV1() ConfigV1 {
	return ConfigV1{
		WordsWeight:                 0.6,
		UniqueWordsWeight:           0.2,
		SentenceLengthWeight:        0.2,
		WordsNormalization:          60_000,
		UniqueWordsNormalization:    9_000,
		SentenceLengthNormalization: 10,
		Min:                         10,
		Max:                         500,
	}
}

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ComputeStatsV1 gathers sentence and word statistics. Chapters are separated
// by blank lines; words are whitespace fields stripped of ASCII punctuation.
// common may be nil.
func ComputeStatsV1(body string, common map[string]struct{}) StatsV1 {
	var stats StatsV1
	unique := make(map[string]struct{})
	for _, chapter := range strings.Split(body, "\n\n") {
		sentences := text.SplitSentences(chapter)
		stats.Sentences += len(sentences)
		for _, sentence := range sentences {
			for _, field := range strings.Fields(sentence) {
				word := cleanWordV1(field)
				stats.Words++
				if _, ok := common[word]; !ok {
					stats.UncommonWords++
				}
				unique[word] = struct{}{}
			}
		}
	}
	stats.UniqueWords = len(unique)
	if stats.Sentences > 0 {
		stats.AverageSentenceLength = math.RoundToEven(float64(stats.Words)/float64(stats.Sentences)*10) / 10
	}
	return stats
}

func cleanWordV1(word string) string {
	word = strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, word)
	return strings.ToLower(word)
}

// ScoreV1 turns statistics into a score clamped to [cfg.Min, cfg.Max].
func ScoreV1(stats StatsV1, cfg ConfigV1) int {
	parts := []struct {
		value, norm, weight float64
	}{
		{float64(stats.Words), cfg.WordsNormalization, cfg.WordsWeight},
		{float64(stats.UniqueWords), cfg.UniqueWordsNormalization, cfg.UniqueWordsWeight},
		{stats.AverageSentenceLength, cfg.SentenceLengthNormalization, cfg.SentenceLengthWeight},
	}
	total := 0
	for _, p := range parts {
		if p.norm == 0 {
			continue
		}
		total += int(math.RoundToEven(p.value/p.norm*p.weight*10)) * 10
	}
	if total < cfg.Min {
		total = cfg.Min
	}
	if total > cfg.Max {
		total = cfg.Max
	}
	return total
}

// CommonSet lower-cases words into a lookup set.
func CommonSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

// CommonFromBands collects the members of every band that ends at or before
// rank limit, so the set holds the limit most frequent words when limit is a
// boundary.
func CommonFromBands(b *bands.Bands, limit int) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i < b.Len(); i++ {
		band := b.Band(i)
		if band.End > limit {
			break
		}
		for word := range band.Members {
			set[word] = struct{}{}
		}
	}
	return set
}
