package shuffle

import (
	"sort"

	"github.com/handiism/playlist-spreader/internal/model"
)

// Index maps virtual weight positions to tracks.
//
// Boundaries has one entry more than there are tracks: boundary i is the
// summed weight of tracks before i, so track i owns [b[i], b[i+1]).
//
//	idx := NewIndex([]float64{3, 4, 3}) // boundaries [0 3 7 10]
//	idx.Lookup(6)                       // 1
type Index struct {
	boundaries []float64
}

// NewIndex builds an Index from raw weights. Weights below 1 count as 1.
func NewIndex(weights []float64) *Index {
	b := make([]float64, len(weights)+1)
	for i, w := range weights {
		b[i+1] = b[i] + model.CoerceWeight(w)
	}
	return &Index{boundaries: b}
}

// BuildIndex builds an Index over the weights of tracks.
func BuildIndex(tracks []*model.NormalizedTrack) *Index {
	weights := make([]float64, len(tracks))
	for i, t := range tracks {
		weights[i] = t.Weight()
	}
	return NewIndex(weights)
}

// Boundaries returns the cumulative weight boundaries.
func (x *Index) Boundaries() []float64 {
	return x.boundaries
}

// Len returns the number of indexed tracks.
func (x *Index) Len() int {
	return len(x.boundaries) - 1
}

// Total returns the summed weight of all tracks.
func (x *Index) Total() float64 {
	return x.boundaries[len(x.boundaries)-1]
}

// Lookup returns the track owning virtual position v.
//
// v must lie in [0, Total()). Out of range values are clamped to the
// first or last track.
func (x *Index) Lookup(v float64) int {
	n := x.Len()
	i := sort.Search(n, func(i int) bool {
		return x.boundaries[i+1] > v
	})
	if i >= n {
		return n - 1
	}
	return i
}
