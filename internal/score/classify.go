// Package score classifies book vocabulary against frequency bands and turns
// the per-band counts into difficulty scores.
package score

import (
	"strings"

	"github.com/verte-zerg/bookscore/internal/bands"
	"github.com/verte-zerg/bookscore/internal/wordlist"
)

// BandCount holds per-band occurrence counts. The last entry of Counts (and
// Labels) is the out-of-range band.
type BandCount struct {
	Labels     []string
	Counts     []int
	OutOfRange map[string]struct{}
}

// Total returns the number of classified words.
func (c BandCount) Total() int {
	total := 0
	for _, n := range c.Counts {
		total += n
	}
	return total
}

// CleanWords keeps vocabulary words and lower-cases them.
func CleanWords(tokens []string) []string {
	words := wordlist.Filter(tokens, wordlist.IsWord)
	for i, word := range words {
		words[i] = strings.ToLower(word)
	}
	return words
}

// Classify counts how many words fall into each band. Words must already be
// cleaned; words outside every band are counted as out-of-range and collected.
func Classify(words []string, b *bands.Bands) BandCount {
	counts := BandCount{
		Labels:     b.Labels(),
		Counts:     make([]int, b.Len()+1),
		OutOfRange: make(map[string]struct{}),
	}
	outOfRange := b.OutOfRange()
	for _, word := range words {
		if idx, ok := b.Lookup(word); ok {
			counts.Counts[idx]++
			continue
		}
		counts.Counts[outOfRange]++
		counts.OutOfRange[word] = struct{}{}
	}
	return counts
}
