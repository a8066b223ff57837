package bands

import (
	"fmt"
	"sort"
)

// Snapshot is the serialisable form of Bands.
type Snapshot struct {
	Boundaries Boundaries `json:"boundaries"`
	Bands      [][]string `json:"bands"`
}

// Snapshot returns the bands with members in sorted order.
func (b *Bands) Snapshot() Snapshot {
	s := Snapshot{
		Boundaries: b.Boundaries(),
		Bands:      make([][]string, len(b.bands)),
	}
	for i, band := range b.bands {
		words := make([]string, 0, len(band.Members))
		for word := range band.Members {
			words = append(words, word)
		}
		sort.Strings(words)
		s.Bands[i] = words
	}
	return s
}

// FromSnapshot restores Bands from a snapshot.
func FromSnapshot(s Snapshot) (*Bands, error) {
	if err := s.Boundaries.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	if len(s.Bands) != len(s.Boundaries)-1 {
		return nil, fmt.Errorf("invalid snapshot: %d bands for %d boundaries", len(s.Bands), len(s.Boundaries))
	}
	return assemble(s.Boundaries, s.Bands)
}
