// Package bands partitions a frequency-ranked vocabulary into rank bands.
package bands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOverlappingBands is returned when a word would belong to more than one band.
var ErrOverlappingBands = errors.New("frequency bands overlap")

// OutOfRangeLabel labels the implicit band of words found in no other band.
const OutOfRangeLabel = "out_of_range"

// DefaultBoundaries are rank edges tuned for a Wikipedia-sized corpus.
var DefaultBoundaries = Boundaries{
	0, 1_000, 3_000, 5_000, 10_000, 15_000, 20_000, 30_000, 50_000,
	100_000, 200_000, 500_000, 1_000_000,
}

// Boundaries are strictly increasing rank edges. Each consecutive pair
// defines a band covering ranks [start, end).
type Boundaries []int

// Validate checks the boundary invariants.
func (b Boundaries) Validate() error {
	if len(b) < 2 {
		return fmt.Errorf("boundaries need at least 2 values, got %d", len(b))
	}
	if b[0] < 0 {
		return fmt.Errorf("boundaries must be non-negative, got %d", b[0])
	}
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			return fmt.Errorf("boundaries must be strictly increasing: %d follows %d", b[i], b[i-1])
		}
	}
	return nil
}

// String renders boundaries as a comma separated list.
func (b Boundaries) String() string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// ParseBoundaries parses a comma separated boundary list such as "0,1000,3000".
func ParseBoundaries(s string) (Boundaries, error) {
	var out Boundaries
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(strings.ReplaceAll(part, "_", ""))
		if err != nil {
			return nil, fmt.Errorf("invalid boundary %q: %w", part, err)
		}
		out = append(out, v)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Band is one frequency tier.
type Band struct {
	Index   int
	Label   string
	Start   int
	End     int
	Members map[string]struct{}
}

// Bands is an immutable, ordered set of disjoint frequency bands. The
// out-of-range band is implicit and has index Len().
type Bands struct {
	boundaries Boundaries
	bands      []Band
	lookup     map[string]int
}

// Build partitions ranked words into bands delimited by boundaries.
//
// ranked must already be filtered to vocabulary words and ordered by
// descending frequency. Ranks past the end of ranked yield smaller (or empty)
// bands.
func Build(ranked []string, boundaries Boundaries) (*Bands, error) {
	if err := boundaries.Validate(); err != nil {
		return nil, err
	}
	members := make([][]string, len(boundaries)-1)
	for i := range members {
		start, end := clamp(boundaries[i], len(ranked)), clamp(boundaries[i+1], len(ranked))
		members[i] = ranked[start:end]
	}
	return assemble(boundaries, members)
}

func assemble(boundaries Boundaries, members [][]string) (*Bands, error) {
	b := &Bands{
		boundaries: append(Boundaries(nil), boundaries...),
		bands:      make([]Band, len(members)),
		lookup:     make(map[string]int),
	}
	for i, words := range members {
		band := Band{
			Index:   i,
			Label:   blockLabel(boundaries[i], boundaries[i+1]),
			Start:   boundaries[i],
			End:     boundaries[i+1],
			Members: make(map[string]struct{}, len(words)),
		}
		for _, word := range words {
			if prev, ok := b.lookup[word]; ok && prev != i {
				return nil, fmt.Errorf("%w: %q in bands %d and %d", ErrOverlappingBands, word, prev, i)
			}
			b.lookup[word] = i
			band.Members[word] = struct{}{}
		}
		b.bands[i] = band
	}
	return b, nil
}

func blockLabel(start, end int) string {
	return fmt.Sprintf("block [%d-%d]", start, end)
}

func clamp(v, n int) int {
	if v > n {
		return n
	}
	return v
}

// Len returns the number of defined bands, excluding out-of-range.
func (b *Bands) Len() int {
	return len(b.bands)
}

// OutOfRange returns the index of the implicit out-of-range band.
func (b *Bands) OutOfRange() int {
	return len(b.bands)
}

// Band returns the band at index i.
func (b *Bands) Band(i int) Band {
	return b.bands[i]
}

// Bands returns the defined bands in ascending index order.
func (b *Bands) Bands() []Band {
	out := make([]Band, len(b.bands))
	copy(out, b.bands)
	return out
}

// Boundaries returns a copy of the boundaries the bands were built from.
func (b *Bands) Boundaries() Boundaries {
	return append(Boundaries(nil), b.boundaries...)
}

// Labels returns band labels in index order, out-of-range last.
func (b *Bands) Labels() []string {
	labels := make([]string, 0, len(b.bands)+1)
	for _, band := range b.bands {
		labels = append(labels, band.Label)
	}
	return append(labels, OutOfRangeLabel)
}

// Lookup returns the band index holding word.
func (b *Bands) Lookup(word string) (int, bool) {
	idx, ok := b.lookup[word]
	return idx, ok
}

// Size returns the total number of words across all bands.
func (b *Bands) Size() int {
	return len(b.lookup)
}
