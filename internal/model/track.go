package model

import (
	"math"
	"strconv"
	"strings"
)

// DefaultWeight is the play-weight assigned to tracks with a missing,
// unparsable or non-positive weight.
const DefaultWeight = 1.0

// Track is one input record of the shuffle.
//
// Track is immutable once created. Identity is Path, but duplicated paths
// are legal: each record is placed independently.
//
// Example:
//
//	track := NewTrack("/music/Chuck Berry/01 - Run Rudolph Run.mp3", 2, nil)
//	// track.Weight = 2
type Track struct {
	// Path is the file path or URI of the track, as given by the input.
	Path string

	// Weight is the relative play-weight. Always >= 1.
	Weight float64

	// OriginalRow holds the raw input columns for the track.
	// The shuffle never reads it.
	OriginalRow []string
}

// NewTrack creates a Track, coercing weight to at least DefaultWeight.
func NewTrack(path string, weight float64, row []string) *Track {
	return &Track{
		Path:        path,
		Weight:      CoerceWeight(weight),
		OriginalRow: row,
	}
}

// CoerceWeight clamps a weight to the valid range.
//
// NaN, infinities and anything below 1 become DefaultWeight.
func CoerceWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < DefaultWeight {
		return DefaultWeight
	}
	return w
}

// ParseWeight converts a textual weight column into a weight.
//
// Blank or malformed values yield DefaultWeight.
//
//	ParseWeight("")    // 1
//	ParseWeight("3")   // 3
//	ParseWeight("2.5") // 2.5
//	ParseWeight("-4")  // 1
func ParseWeight(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultWeight
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return DefaultWeight
	}
	return CoerceWeight(w)
}

// NormalizedTrack pairs a Track with its canonical song title.
//
// Title is only meaningful within one grouping run: it depends on the
// other tracks that were grouped alongside it.
type NormalizedTrack struct {
	// Path is copied from Source for convenience.
	Path string

	// Title is the canonical lowercase song key. May be empty.
	Title string

	// Source is the input track.
	Source *Track
}

// Weight returns the weight of the underlying track.
func (n *NormalizedTrack) Weight() float64 {
	if n.Source == nil {
		return DefaultWeight
	}
	return n.Source.Weight
}

// Placement is one slot of a shuffled sequence.
type Placement struct {
	// Slot is the 0-based position in the output.
	Slot int

	// Track is the track placed at Slot.
	Track *NormalizedTrack
}

// Paths returns the paths of a placement sequence in order.
func Paths(placements []Placement) []string {
	paths := make([]string, len(placements))
	for i, p := range placements {
		paths[i] = p.Track.Path
	}
	return paths
}
