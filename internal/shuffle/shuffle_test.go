package shuffle

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/handiism/playlist-spreader/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func normalized(title, path string, weight float64) *model.NormalizedTrack {
	return &model.NormalizedTrack{
		Path:   path,
		Title:  title,
		Source: model.NewTrack(path, weight, nil),
	}
}

// distinctTracks returns n tracks with n different titles.
func distinctTracks(n int) []*model.NormalizedTrack {
	tracks := make([]*model.NormalizedTrack, n)
	for i := range tracks {
		tracks[i] = normalized(fmt.Sprintf("song %d", i), fmt.Sprintf("/m/%02d.mp3", i), 1)
	}
	return tracks
}

func TestIndex_Lookup(t *testing.T) {
	idx := NewIndex([]float64{3, 4, 3})

	require.Equal(t, []float64{0, 3, 7, 10}, idx.Boundaries())
	assert.Equal(t, 10.0, idx.Total())
	assert.Equal(t, 3, idx.Len())

	tests := []struct {
		v    float64
		want int
	}{
		{0, 0}, {2, 0}, {2.99, 0},
		{3, 1}, {6, 1},
		{7, 2}, {9, 2}, {9.99, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.Lookup(tt.v), "Lookup(%v)", tt.v)
	}

	assert.Equal(t, 2, idx.Lookup(10), "out of range clamps to last track")
}

func TestIndex_DefaultWeights(t *testing.T) {
	idx := NewIndex([]float64{0, -3, math.NaN(), 2})
	assert.Equal(t, []float64{0, 1, 2, 3, 5}, idx.Boundaries())

	tracks := []*model.NormalizedTrack{
		normalized("a", "a.mp3", 0),
		normalized("b", "b.mp3", 4),
	}
	assert.Equal(t, []float64{0, 1, 5}, BuildIndex(tracks).Boundaries())
}

func TestShuffle_TargetCount(t *testing.T) {
	tracks := distinctTracks(8)

	for _, count := range []int{1, 3, 8, 25} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			res, err := NewShuffler(NewRand(1), zaptest.NewLogger(t)).Shuffle(tracks, 2, count)
			require.NoError(t, err)
			require.Len(t, res.Placements, count)
			for i, p := range res.Placements {
				assert.Equal(t, i, p.Slot)
			}
		})
	}
}

func TestShuffle_SeedIsDeterministic(t *testing.T) {
	tracks := distinctTracks(20)

	a, err := NewShuffler(NewRand(42), nil).Shuffle(tracks, 5, 40)
	require.NoError(t, err)
	b, err := NewShuffler(NewRand(42), nil).Shuffle(tracks, 5, 40)
	require.NoError(t, err)

	if diff := cmp.Diff(model.Paths(a.Placements), model.Paths(b.Placements)); diff != "" {
		t.Errorf("same seed produced different output (-first +second):\n%s", diff)
	}
}

func TestShuffle_DistanceHeldWithoutRelaxation(t *testing.T) {
	tracks := append(distinctTracks(12),
		normalized("song 0", "/m/00-live.mp3", 1),
		normalized("song 1", "/m/01-remix.mp3", 1),
	)

	for seed := uint64(0); seed < 20; seed++ {
		res, err := NewShuffler(NewRand(seed), nil).Shuffle(tracks, 4, len(tracks))
		require.NoError(t, err)

		audit := Audit(res.Placements, 4)
		assert.Empty(t, audit.Unexplained(res.Relaxations), "seed %d", seed)
		if len(res.Relaxations) == 0 {
			assert.True(t, audit.OK(), "seed %d", seed)
		}
	}
}

func TestShuffle_RelaxesUnsatisfiableConstraint(t *testing.T) {
	tracks := []*model.NormalizedTrack{
		normalized("silent night", "/a/Silent Night.mp3", 1),
		normalized("silent night", "/b/Silent Night (Live).mp3", 1),
	}

	res, err := NewShuffler(NewRand(7), zaptest.NewLogger(t)).Shuffle(tracks, 5, 4)
	require.NoError(t, err)
	require.Len(t, res.Placements, 4)

	require.Len(t, res.Relaxations, 3)
	for i, rl := range res.Relaxations {
		assert.Equal(t, i+1, rl.Slot)
		assert.Equal(t, "silent night", rl.Title)
		assert.Greater(t, rl.Attempts, MaxAttempts)
	}

	audit := Audit(res.Placements, 5)
	assert.Len(t, audit.Violations, 6)
	assert.Equal(t, 1, audit.MinObserved)
	assert.Empty(t, audit.Unexplained(res.Relaxations))
}

func TestShuffle_ZeroDistanceNeverRelaxes(t *testing.T) {
	tracks := []*model.NormalizedTrack{normalized("x", "x.mp3", 1)}

	res, err := NewShuffler(NewRand(3), nil).Shuffle(tracks, 0, 10)
	require.NoError(t, err)
	assert.Len(t, res.Placements, 10)
	assert.Empty(t, res.Relaxations)
}

func TestShuffle_RespectsWeights(t *testing.T) {
	tracks := []*model.NormalizedTrack{
		normalized("heavy", "heavy.mp3", 9),
		normalized("light", "light.mp3", 1),
	}

	res, err := NewShuffler(NewRand(11), nil).Shuffle(tracks, 0, 10000)
	require.NoError(t, err)

	stats := res.Distribution.Stats
	require.Len(t, stats, 2)
	assert.InDelta(t, 0.9, stats[0].Expected, 1e-9)
	assert.InDelta(t, 0.1, stats[1].Expected, 1e-9)
	assert.InDelta(t, 0.9, stats[0].Observed, 0.03)
	assert.InDelta(t, 0.1, stats[1].Observed, 0.03)
}

func TestShuffle_Errors(t *testing.T) {
	s := NewShuffler(NewRand(1), nil)

	_, err := s.Shuffle(nil, 5, 1)
	assert.ErrorIs(t, err, ErrNoTracks)

	_, err = s.Shuffle(distinctTracks(2), 5, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = s.Shuffle(distinctTracks(2), -1, 2)
	assert.ErrorIs(t, err, ErrInvalidDistance)
}

func TestDistribution(t *testing.T) {
	tracks := []*model.NormalizedTrack{
		normalized("a", "a.mp3", 2),
		normalized("b", "b.mp3", 1),
		normalized("a", "a.mp3", 1),
		normalized("c", "c.mp3", 4),
	}

	d := newDistribution(tracks, 8, 10, map[string][]int{
		"a.mp3": {1, 4, 9},
		"b.mp3": {0},
	})

	require.Len(t, d.Stats, 3, "duplicate paths share one row")

	a := d.Stats[0]
	assert.Equal(t, "a.mp3", a.Path)
	assert.Equal(t, 3, a.Count)
	assert.InDelta(t, 3.0/8, a.Expected, 1e-9)
	assert.InDelta(t, 0.3, a.Observed, 1e-9)
	assert.Equal(t, 1, a.FirstDelta)
	assert.Equal(t, 0, a.LastDelta)
	assert.InDelta(t, 4.0, a.AverageDelta, 1e-9)

	b := d.Stats[1]
	assert.Equal(t, 0, b.FirstDelta)
	assert.Equal(t, 9, b.LastDelta)
	assert.Zero(t, b.AverageDelta)

	c := d.Stats[2]
	assert.False(t, c.Placed())
	assert.Equal(t, -1, c.FirstDelta)
	assert.Equal(t, -1, c.LastDelta)
	assert.InDelta(t, 0.5, c.Expected, 1e-9)
}

func TestAudit(t *testing.T) {
	titles := []string{"a", "b", "a", "c", "a"}
	placements := make([]model.Placement, len(titles))
	for i, title := range titles {
		placements[i] = model.Placement{Slot: i, Track: &model.NormalizedTrack{Title: title}}
	}

	r := Audit(placements, 3)
	assert.Equal(t, []Violation{
		{First: 0, Second: 2, Title: "a", Distance: 2},
		{First: 2, Second: 4, Title: "a", Distance: 2},
	}, r.Violations)
	assert.Equal(t, 2, r.MinObserved)
	assert.Equal(t, "2 violations (min distance 3, closest 2)", r.Summary())
	assert.Len(t, r.Unexplained([]Relaxation{{Slot: 2}}), 1)

	r = Audit(placements, 2)
	assert.True(t, r.OK())
	assert.Equal(t, "no violations (min distance 2)", r.Summary())
}

func TestPassThrough(t *testing.T) {
	tracks := []*model.Track{
		model.NewTrack("a", 1, nil),
		model.NewTrack("b", 1, nil),
		model.NewTrack("c", 1, nil),
	}

	assert.Equal(t, []string{"a", "b", "c"}, model.Paths(PassThrough(tracks, 0)))
	assert.Equal(t, []string{"a", "b"}, model.Paths(PassThrough(tracks, 2)))
	assert.Equal(t, []string{"a", "b", "c"}, model.Paths(PassThrough(tracks, 9)))
}
