package shuffle

import "github.com/handiism/playlist-spreader/internal/model"

// TrackStats describes how often and where one path was placed.
type TrackStats struct {
	Path  string
	Title string

	// Count is the number of placements.
	Count int

	// Expected is the path's share of the total weight.
	Expected float64

	// Observed is Count divided by the number of slots.
	Observed float64

	// FirstDelta is the slot of the first placement, -1 if never placed.
	FirstDelta int

	// LastDelta is the number of slots after the last placement, -1 if
	// never placed.
	LastDelta int

	// AverageDelta is the mean gap between consecutive placements,
	// 0 with fewer than two placements.
	AverageDelta float64

	// Indexes are the slots the path was placed at, ascending.
	Indexes []int
}

// Placed reports whether the path was placed at least once.
func (s TrackStats) Placed() bool {
	return s.Count > 0
}

// Distribution holds the statistics of every distinct input path, in
// order of first appearance in the input.
type Distribution struct {
	Slots int
	Stats []TrackStats
}

func newDistribution(tracks []*model.NormalizedTrack, totalWeight float64, slots int, slotsByPath map[string][]int) *Distribution {
	d := &Distribution{Slots: slots}

	weightByPath := make(map[string]float64)
	position := make(map[string]int)
	for _, t := range tracks {
		weightByPath[t.Path] += t.Weight()
		if _, ok := position[t.Path]; ok {
			continue
		}
		position[t.Path] = len(d.Stats)
		d.Stats = append(d.Stats, TrackStats{Path: t.Path, Title: t.Title})
	}

	for i := range d.Stats {
		st := &d.Stats[i]
		st.Indexes = slotsByPath[st.Path]
		st.Count = len(st.Indexes)
		st.Expected = weightByPath[st.Path] / totalWeight
		st.Observed = float64(st.Count) / float64(slots)
		st.FirstDelta, st.LastDelta = -1, -1

		if st.Count == 0 {
			continue
		}
		first, last := st.Indexes[0], st.Indexes[st.Count-1]
		st.FirstDelta = first
		st.LastDelta = slots - 1 - last
		if st.Count > 1 {
			st.AverageDelta = float64(last-first) / float64(st.Count-1)
		}
	}

	return d
}
